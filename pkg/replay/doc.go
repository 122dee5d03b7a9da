// Package replay refuses TOTP codes that were already accepted.
//
// A TOTP code stays valid for its whole time step and, with drift tolerance,
// for neighbouring steps too. Verification alone therefore accepts the same
// code more than once. A Store remembers the counter of the last accepted
// code per key (usually the account id) and only accepts strictly newer ones.
//
// Two implementations are provided:
//
//   - MemoryStore keeps state in process memory with a background cleanup loop.
//   - RedisStore uses a Lua compare-and-set script so the check and the write
//     are atomic across instances.
//
// # Usage
//
//	store := replay.NewMemoryStore()
//	defer store.Close()
//
//	ok, err := store.Accept(ctx, accountID, result.Counter, 2*time.Minute)
//	if err != nil {
//		// infrastructure failure
//	}
//	if !ok {
//		// replayed code
//	}
//
// With Redis:
//
//	var cfg replay.Config
//	_ = env.Parse(&cfg)
//	client, err := replay.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := replay.NewRedisStore(client)
package replay
