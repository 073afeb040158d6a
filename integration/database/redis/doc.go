// Package redis connects to Redis with go-redis and provides a Redis-backed
// expiry.Store.
//
// Connect validates the URL (redis:// or rediss://), then pings with
// exponential backoff until the server answers or cfg.ConnectTimeout passes:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Healthcheck returns a ping function for readiness probes.
//
// Store implements expiry.Store. Every process talking to the same server and
// key prefix reads the same expiry values, so a session ended in one place
// shows up as absent everywhere else:
//
//	tracker, err := expiry.New(id, expiry.BackendLocal, 30*time.Minute, expiry.Stores{
//		Local:   redis.NewStoreFromConfig(cfg, client),
//		Session: expiry.NewMemoryStore(),
//	})
//
// Errors returned by Connect and Healthcheck wrap ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString, ErrRedisNotReady or ErrHealthcheckFailed.
package redis
