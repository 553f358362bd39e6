package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"mentorhub-backend-go/internal/config"
	"mentorhub-backend-go/internal/meetings"
	"mentorhub-backend-go/internal/services"
	"mentorhub-backend-go/internal/store"
)

type Server struct {
	Config       config.Config
	Tokens       services.TokenService
	Accounts     *services.AccountService
	Profiles     *services.ProfileService
	Repositories *services.RepositoryService
	Mentorships  *services.MentorshipService
	Sessions     *services.SessionService
	Feedback     *services.FeedbackService
	Chat         *services.ChatService
	Discovery    *services.DiscoveryService
	Metrics      store.MetricStore
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.ChatHub, provisioner meetings.Provisioner, recommender services.Recommender, transcriber services.VoiceTranscriber) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(cfg.RefreshTTLSeconds) * time.Second,
	}
	st := store.NewPostgres(db)
	return &Server{
		Config:       cfg,
		Tokens:       tokens,
		Accounts:     services.NewAccountService(st, st, tokens),
		Profiles:     services.NewProfileService(st, st),
		Repositories: services.NewRepositoryService(st, st),
		Mentorships:  services.NewMentorshipService(st, st, st),
		Sessions:     services.NewSessionService(st, st, st, provisioner),
		Feedback:     services.NewFeedbackService(st, st, st),
		Chat:         services.NewChatService(st, st, hub, transcriber),
		Discovery:    services.NewDiscoveryService(st, st, recommender),
		Metrics:      st,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)
		api.Post("/auth/logout", s.Logout)

		api.Route("/me", func(me chi.Router) {
			me.Use(WithAuth(s.Tokens))
			me.Get("/", s.Me)
			me.Put("/profile", s.UpdateProfile)
		})

		api.Route("/repositories", func(repos chi.Router) {
			repos.Use(WithAuth(s.Tokens))
			repos.Get("/", s.ListRepositories)
			repos.Get("/{repositoryId}", s.GetRepository)
			repos.Get("/{repositoryId}/mentors", s.ListRepositoryMentors)
			repos.Group(func(mentor chi.Router) {
				mentor.Use(RequireRole("mentor"))
				mentor.Post("/", s.CreateRepository)
				mentor.Put("/{repositoryId}", s.UpdateRepository)
				mentor.Delete("/{repositoryId}", s.DeleteRepository)
				mentor.Post("/{repositoryId}/mentors", s.AttachMentor)
				mentor.Delete("/{repositoryId}/mentors", s.DetachMentor)
			})
		})

		api.Route("/mentors", func(mentors chi.Router) {
			mentors.Use(WithAuth(s.Tokens))
			mentors.Get("/{mentorId}", s.MentorDetail)
		})

		api.Route("/mentorships", func(requests chi.Router) {
			requests.Use(WithAuth(s.Tokens))
			requests.With(RequireRole("student")).Post("/", s.CreateMentorshipRequest)
			requests.With(RequireRole("student")).Get("/mine", s.StudentMentorships)
			requests.With(RequireRole("mentor")).Get("/incoming", s.MentorMentorships)
			requests.With(RequireRole("mentor")).Put("/{requestId}/status", s.RespondMentorshipRequest)
			requests.With(RequireRole("student")).Post("/{requestId}/feedback", s.SubmitMentorshipFeedback)
		})

		api.Route("/sessions", func(sessions chi.Router) {
			sessions.Use(WithAuth(s.Tokens))
			sessions.With(RequireRole("student")).Post("/", s.RequestSession)
			sessions.With(RequireRole("student")).Get("/mine", s.StudentSessions)
			sessions.With(RequireRole("mentor")).Get("/incoming", s.MentorSessions)
			sessions.With(RequireRole("mentor")).Post("/{sessionId}/approve", s.ApproveSession)
			sessions.With(RequireRole("mentor")).Post("/{sessionId}/reject", s.RejectSession)
			sessions.With(RequireRole("student")).Post("/{sessionId}/feedback", s.SubmitSessionFeedback)
		})

		api.With(WithAuth(s.Tokens), RequireRole("mentor")).Get("/feedback/received", s.MentorFeedback)

		api.Route("/messages", func(messages chi.Router) {
			messages.Use(WithAuth(s.Tokens))
			messages.Get("/conversations", s.Conversations)
			messages.Post("/transcribe", s.TranscribeVoice)
			messages.Get("/{peerId}", s.Conversation)
			messages.Post("/{peerId}", s.SendMessage)
			messages.Post("/{peerId}/read", s.MarkRead)
		})

		api.With(WithAuth(s.Tokens), RequireRole("student")).Post("/ai/discovery", s.DiscoverRepositories)

		api.With(WithAuth(s.Tokens), RequireAdmin(s.Config.AdminEmails)).Get("/admin/metrics/history", s.MetricsHistory)
	})

	// Websocket auth rides on a query token; the middleware expects a header.
	r.Get("/ws/chat", s.ChatSocket)

	return r
}
