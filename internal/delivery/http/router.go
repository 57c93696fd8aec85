package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"artistbooking/internal/delivery/http/controllers"
	"artistbooking/internal/delivery/http/middleware"
	"artistbooking/internal/domain"
)

// RouterDeps bundles everything the router wires together.
type RouterDeps struct {
	Logger     *slog.Logger
	Verifier   domain.TokenVerifier
	Sessions   domain.SessionRepository
	Access     domain.AccessService
	StorageDir string

	Auth    *controllers.AuthController
	Artist  *controllers.ArtistController
	Profile *controllers.ProfileController
	Booking *controllers.BookingController
	Session *controllers.SessionController
	Admin   *controllers.AdminController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(deps.Verifier, deps.Sessions, deps.Logger)
	optionalAuth := middleware.OptionalAuth(deps.Verifier)
	canEditProfile := middleware.RequirePermission(deps.Access, "edit_artist_profile")
	canCreateBookings := middleware.RequirePermission(deps.Access, "create_events")
	canEditBookings := middleware.RequirePermission(deps.Access, "edit_events")
	canAccessAdmin := middleware.RequirePermission(deps.Access, "access_admin_panel")

	// Auth
	mux.HandleFunc("POST /auth/register", deps.Auth.RegisterUser)
	mux.HandleFunc("POST /auth/register/artist", deps.Auth.RegisterArtist)
	mux.HandleFunc("POST /auth/register/venue", deps.Auth.RegisterVenue)
	mux.HandleFunc("POST /auth/register/organiser", deps.Auth.RegisterOrganiser)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)
	mux.HandleFunc("GET /auth/verify-email", deps.Auth.VerifyEmail)
	mux.HandleFunc("POST /auth/logout", requireAuth(deps.Auth.Logout))

	// Public artist pages
	mux.HandleFunc("GET /home/artists", deps.Artist.Home)
	mux.HandleFunc("GET /artists/{artistID}", optionalAuth(deps.Artist.Show))
	mux.HandleFunc("POST /artists/{artistID}/follow", requireAuth(deps.Artist.ToggleFollow))

	// Artist self-service
	mux.HandleFunc("GET /artist/dashboard", requireAuth(deps.Profile.Dashboard))
	mux.HandleFunc("PATCH /artist/profile", requireAuth(canEditProfile(deps.Profile.UpdateProfile)))

	// Bookings
	mux.HandleFunc("POST /bookings", requireAuth(canCreateBookings(deps.Booking.Create)))
	mux.HandleFunc("GET /bookings", requireAuth(deps.Booking.ListMine))
	mux.HandleFunc("PATCH /bookings/{bookingID}/status", requireAuth(canEditBookings(deps.Booking.UpdateStatus)))
	mux.HandleFunc("GET /artists/{artistID}/bookings", requireAuth(deps.Booking.ListByArtist))

	// Sessions
	mux.HandleFunc("GET /sessions", requireAuth(deps.Session.List))
	mux.HandleFunc("DELETE /sessions/others", requireAuth(deps.Session.RevokeOthers))
	mux.HandleFunc("DELETE /sessions/{sessionID}", requireAuth(deps.Session.Revoke))

	// Admin
	mux.HandleFunc("GET /admin/stats", requireAuth(canAccessAdmin(deps.Admin.Stats)))

	// Uploaded files
	if deps.StorageDir != "" {
		mux.Handle("GET /storage/", http.StripPrefix("/storage/", http.FileServer(http.Dir(deps.StorageDir))))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
