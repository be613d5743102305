// Package server provides HTTP routing, middleware, and handlers for the audio library web service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering. Path
// wildcards ({track_id}, {playlist_id}) resolve through [http.Request.PathValue].
//
// # Sessions & Authentication
//
// [SessionStore] keeps opaque session tokens in memory with a configurable TTL. [AuthHandler]
// exposes register, login, and logout endpoints backed by bcrypt password hashes, and the
// [RequireSession] middleware gates everything else behind a valid session cookie.
//
// # Streaming
//
// [Gateway] resolves catalog rows to on-disk audio and thumbnail files and serves them; the stream
// routes are additionally wrapped with a per-client rate limiter.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
