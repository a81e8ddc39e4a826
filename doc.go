// Package uuidshim generates, parses and inspects RFC 4122 UUIDs in their
// canonical 36-character textual form and their 16-byte binary form.
//
// Two kinds of UUID are generated: version 4 (random) and version 1
// (time-based, carrying a 60-bit timestamp in 100ns intervals since
// 1582-10-15 and a 48-bit node identifier). Inspection works on any
// well-formed UUID.
//
// Basic Usage:
//
//	// Create a random UUID string
//	s := uuidshim.Create(uuidshim.KindRandom)
//
//	// Inspect a time-based UUID
//	s = uuidshim.Create(uuidshim.KindTime)
//	sec, err := uuidshim.TimeOf(s)   // Unix seconds
//	node, err := uuidshim.NodeOf(s)  // lower-case hex, unpadded
//
//	// Convert between text and bytes
//	b, err := uuidshim.ParseBytes("f47ac10b-58cc-4372-a567-0e02b2c3d479")
//	s, err = uuidshim.Format(b)
//
// Custom Generator:
//
//	gen := uuidshim.NewGenerator(
//	    uuidshim.WithNodeStore(redisstore.New(client)),
//	    uuidshim.WithStoreTimeout(50*time.Millisecond),
//	)
//	id, err := gen.NewTime(ctx)
//
// Node Identifier:
//
// Version 1 UUIDs need a node identifier that stays stable for the life of
// the process. Without a NodeStore a random 48-bit value is drawn once per
// process. With a NodeStore (see store/redisstore, store/mysqlstore and
// store/zkstore) the value is shared under NodeKey, so several processes on
// one host agree on it. Store failures fall back to the process-wide value.
//
// Thread Safety:
//
// All operations are thread-safe. The default generator can be used concurrently
// from multiple goroutines without additional synchronization.
//
// Sentinel Values:
//
// TypeOf and VariantOf report TypeNull for the nil UUID
// 00000000-0000-0000-0000-000000000000. VersionNull and VariantNull are both
// equal to TypeNull.
package uuidshim
