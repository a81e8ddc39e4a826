package uuidshim

import (
	"context"
	"testing"
)

func BenchmarkCreate(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = Create(KindRandom)
		}
	})
}

func BenchmarkGenerator_NewRandom(b *testing.B) {
	gen := NewGenerator()
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := gen.NewRandom()
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkGenerator_NewTime(b *testing.B) {
	gen := NewGenerator()
	ctx := context.Background()
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := gen.NewTime(ctx)
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkUUID_String(b *testing.B) {
	uuid := MustParse(sample)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = uuid.String()
	}
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Parse(sample)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseLoose_NoHyphens(b *testing.B) {
	s := "f47ac10b58cc4372a5670e02b2c3d479"
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := ParseLoose(s)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIsValid(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !IsValid(sample) {
			b.Fatal("sample rejected")
		}
	}
}

func BenchmarkParseBytes(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := ParseBytes(sample)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	raw := MustParse(sample).Bytes()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Format(raw)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTypeOf(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := TypeOf(sample)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTimeOf(b *testing.B) {
	s := Create(KindTime)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := TimeOf(s)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare(b *testing.B) {
	x := Create(KindRandom)
	y := Create(KindRandom)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Compare(x, y)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUUID_MarshalText(b *testing.B) {
	uuid := MustParse(sample)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := uuid.MarshalText()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUUID_UnmarshalText(b *testing.B) {
	text := []byte(sample)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var uuid UUID
		err := uuid.UnmarshalText(text)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUUID_UnmarshalBinary(b *testing.B) {
	data, _ := MustParse(sample).MarshalBinary()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var u UUID
		err := u.UnmarshalBinary(data)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUUID_EncodeToHex(b *testing.B) {
	uuid := MustParse(sample)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = uuid.EncodeToHex()
	}
}

func BenchmarkDecodeFromHex(b *testing.B) {
	s := "f47ac10b58cc4372a5670e02b2c3d479"
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := DecodeFromHex(s)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark node lookups through a store
func BenchmarkGenerator_NodeWithStore(b *testing.B) {
	store := newFakeStore()
	gen := NewGenerator(WithNodeStore(store))
	ctx := context.Background()
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := gen.Node(ctx)
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

// Benchmark for batch generation
func BenchmarkGenerator_NewBatch(b *testing.B) {
	gen := NewGenerator()
	ctx := context.Background()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 100; j++ {
			_, err := gen.New(ctx, KindDefault)
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
