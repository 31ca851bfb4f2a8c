// Package logger builds the zap logger used across the service.
//
// New picks a development or production encoder from the configured format and
// applies the configured level (debug, info, warn, error).
//
// # Scoped loggers
//
// WithRayID tags entries with the request id stored by the rayid middleware, so
// every line written while handling one save can be correlated. WithShop adds the
// shop domain and bundle surface; the reconciler logs through it.
//
//	l := logger.WithShop(base, "demo.myshopify.com", "cart")
//	l.Warn("Discount delete failed", zap.String("code", "fubndl-5"), zap.Error(err))
package logger
