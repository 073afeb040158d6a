// Package expiry tracks client-side session expiry.
//
// A Tracker stores one expiry timestamp (whole unix seconds, as a decimal
// string) under "expiryTime"+identifier in one of two injected stores,
// answers whether the session has lapsed, and fires a one-shot callback when
// the session timeout runs out.
//
// # Backends
//
// Two backends exist: BackendLocal ("localStorage"), usually a store shared
// between processes such as Redis or PostgreSQL, and BackendSession
// ("sessionStorage"), usually a MemoryStore. The backend is resolved once at
// construction. Any other name disables persistence: reads report no expiry
// and writes are skipped. RemoveExpiry always clears both backends.
//
//	tracker, err := expiry.New("user-42", expiry.BackendLocal, 30*time.Minute, expiry.Stores{
//		Local:   redis.NewStore(client),
//		Session: expiry.NewMemoryStore(),
//	})
//	if err != nil {
//		return err
//	}
//
//	tracker.SetExpiry(ctx)
//	tracker.SetCallback(func() { signOut() })
//	tracker.Start()
//
// # Expiry queries
//
// IsExpired is true only in a top-level Frame, with a stored expiry that is
// strictly in the past. IsExpiredOrAbsent is also true when the value is gone,
// which is how a tracker learns that another tracker sharing the store has
// already ended the session.
//
// # Timer
//
// Start arms a timer for timeout plus one second, Stop cancels it and Reset
// re-arms it. The callback is read when the timer fires; firing without a
// callback panics with an error wrapping ErrCallbackNotSet.
//
// # Diagnostics
//
// WithDebug(true) logs every query and transition at debug level. Without it
// the tracker only logs store failures, to the logger given by WithLogger.
package expiry
