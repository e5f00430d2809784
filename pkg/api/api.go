// Package api exposes the nursery repository over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"nursery/pkg/logger"
	"nursery/pkg/nursery"
	"nursery/pkg/otel"
	"nursery/pkg/session"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	repo       nursery.Repository
	sessions   session.Store
	sessionTTL time.Duration
	stats      nursery.StatsOptions
	log        *logger.Logger
	tracer     trace.Tracer
}

// Config collects what New needs.
type Config struct {
	Repo       nursery.Repository
	Sessions   session.Store
	SessionTTL time.Duration
	Stats      nursery.StatsOptions
	Log        *logger.Logger
	Tracer     trace.Tracer
}

// New creates a Server.
func New(cfg Config) *Server {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	return &Server{
		repo:       cfg.Repo,
		sessions:   cfg.Sessions,
		sessionTTL: cfg.SessionTTL,
		stats:      cfg.Stats,
		log:        cfg.Log,
		tracer:     cfg.Tracer,
	}
}

type userKey struct{}

const sessionCookie = "session_id"

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.traceMiddleware)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/login", s.loginHandler).Methods(http.MethodPost)

	r.HandleFunc("/plants", s.listPlantsHandler).Methods(http.MethodGet)
	r.HandleFunc("/plants/cheapest", s.cheapestPlantHandler).Methods(http.MethodGet)
	r.HandleFunc("/plants/search", s.searchPlantHandler).Methods(http.MethodGet)
	r.HandleFunc("/plants/{id}", s.getPlantHandler).Methods(http.MethodGet)
	r.HandleFunc("/species/{species}/count", s.countSpeciesHandler).Methods(http.MethodGet)
	r.HandleFunc("/monocots", s.monocotHandler).Methods(http.MethodGet)
	r.HandleFunc("/purchases/count", s.countPurchasesHandler).Methods(http.MethodGet)
	r.HandleFunc("/discounts/bulk", s.bulkDiscountHandler).Methods(http.MethodGet)
	r.HandleFunc("/discounts/loyalty", s.loyaltyDiscountHandler).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.statsHandler).Methods(http.MethodGet)

	r.Handle("/plants", s.authMiddleware(http.HandlerFunc(s.createPlantHandler))).Methods(http.MethodPost)
	r.Handle("/plants/{id}", s.authMiddleware(http.HandlerFunc(s.deletePlantHandler))).Methods(http.MethodDelete)
	r.Handle("/purchases", s.authMiddleware(http.HandlerFunc(s.recordPurchaseHandler))).Methods(http.MethodPost)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.tracer == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := otel.InjectTracing(r.Context(), s.tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authMiddleware ensures a valid session exists.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		user, err := s.sessions.Lookup(r.Context(), c.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				s.log.Error(r.Context(), "lookup session", "error", err)
			}
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loginRequest represents login credentials.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginHandler handles user login and session creation.
// @Summary Login
// @Description Authenticates user and sets session cookie
// @Accept json
// @Param creds body loginRequest true "Credentials"
// @Success 200
// @Router /login [post]
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "invalid credentials", http.StatusBadRequest)
		return
	}
	sid, err := s.sessions.Create(ctx, req.Username, s.sessionTTL)
	if err != nil {
		s.log.Error(ctx, "create session", "error", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sid, Path: "/", Expires: time.Now().Add(s.sessionTTL), HttpOnly: true})
	w.WriteHeader(http.StatusOK)
}

// plantRequest is the body accepted when adding a plant.
type plantRequest struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Age       int     `json:"age"`
	Height    float64 `json:"height"`
	Price     float64 `json:"price"`
	Flowering bool    `json:"flowering"`
	IsMonocot bool    `json:"is_monocot"`
}

func (p plantRequest) plant() nursery.Plant {
	if p.Flowering {
		return nursery.NewFloweringPlant(p.Name, p.Species, p.Age, p.Height, p.Price, p.IsMonocot)
	}
	return nursery.NewPlant(p.Name, p.Species, p.Age, p.Height, p.Price)
}

// createPlantHandler adds a plant.
// @Summary Add plant
// @Accept json
// @Produce json
// @Param plant body plantRequest true "Plant"
// @Success 201 {object} nursery.Plant
// @Security ApiKeyAuth
// @Router /plants [post]
func (s *Server) createPlantHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createPlantHandler")
	defer span.End()

	var req plantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := s.repo.AddPlant(req.plant())
	span.SetAttributes(attribute.String("plant.id", p.ID.String()))
	s.log.Info(ctx, "plant added", "id", p.ID, "name", p.Name, "flowering", p.IsFlowering(), "user", ctx.Value(userKey{}))
	writeJSON(w, http.StatusCreated, p)
}

// listPlantsHandler lists plants in insertion order.
// @Summary List plants
// @Produce json
// @Success 200 {array} nursery.Plant
// @Router /plants [get]
func (s *Server) listPlantsHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "listPlantsHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, s.repo.Plants())
}

// getPlantHandler retrieves a plant by ID.
// @Summary Get plant
// @Produce json
// @Param id path string true "Plant ID"
// @Success 200 {object} nursery.Plant
// @Router /plants/{id} [get]
func (s *Server) getPlantHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "getPlantHandler")
	defer span.End()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid plant id", http.StatusBadRequest)
		return
	}
	p, ok := s.repo.Plant(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// deletePlantHandler removes a plant. Removing an unknown plant succeeds.
// @Summary Remove plant
// @Param id path string true "Plant ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /plants/{id} [delete]
func (s *Server) deletePlantHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deletePlantHandler")
	defer span.End()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid plant id", http.StatusBadRequest)
		return
	}
	s.repo.RemovePlant(nursery.Plant{ID: id})
	s.log.Info(ctx, "plant removed", "id", id, "user", ctx.Value(userKey{}))
	w.WriteHeader(http.StatusNoContent)
}

// cheapestPlantHandler returns the lowest priced plant.
// @Summary Cheapest plant
// @Produce json
// @Success 200 {object} nursery.Plant
// @Router /plants/cheapest [get]
func (s *Server) cheapestPlantHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "cheapestPlantHandler")
	defer span.End()

	p, ok := s.repo.CheapestPlant()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// searchPlantHandler finds a plant by name, ignoring case.
// @Summary Find plant by name
// @Produce json
// @Param name query string true "Plant name"
// @Success 200 {object} nursery.Plant
// @Router /plants/search [get]
func (s *Server) searchPlantHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "searchPlantHandler")
	defer span.End()

	p, ok := s.repo.FindPlantByName(r.URL.Query().Get("name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// countSpeciesHandler counts plants of a species.
// @Summary Count plants by species
// @Produce json
// @Param species path string true "Species"
// @Success 200 {object} countResponse
// @Router /species/{species}/count [get]
func (s *Server) countSpeciesHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "countSpeciesHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, countResponse{Count: s.repo.CountBySpecies(mux.Vars(r)["species"])})
}

// monocotHandler reports whether a flowering monocot has the given price.
// @Summary Monocot with price
// @Produce json
// @Param price query number true "Price"
// @Success 200 {object} existsResponse
// @Router /monocots [get]
func (s *Server) monocotHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "monocotHandler")
	defer span.End()

	price, err := queryFloat(r, "price")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, existsResponse{Exists: s.repo.HasMonocotWithPrice(price)})
}

// recordPurchaseHandler records one customer purchase.
// @Summary Record purchase
// @Produce json
// @Success 201 {object} countResponse
// @Security ApiKeyAuth
// @Router /purchases [post]
func (s *Server) recordPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "recordPurchaseHandler")
	defer span.End()

	total := s.repo.RecordCustomerPurchase()
	s.log.Info(ctx, "purchase recorded", "total", total)
	writeJSON(w, http.StatusCreated, countResponse{Count: total})
}

// countPurchasesHandler returns the total number of purchases.
// @Summary Total purchases
// @Produce json
// @Success 200 {object} countResponse
// @Router /purchases/count [get]
func (s *Server) countPurchasesHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "countPurchasesHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, countResponse{Count: s.repo.TotalCustomerPurchases()})
}

// bulkDiscountHandler computes a bulk discount.
// @Summary Bulk discount
// @Produce json
// @Param total query number true "Total amount"
// @Param threshold query number true "Threshold"
// @Success 200 {object} amountResponse
// @Router /discounts/bulk [get]
func (s *Server) bulkDiscountHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "bulkDiscountHandler")
	defer span.End()

	total, err := queryFloat(r, "total")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	threshold, err := queryFloat(r, "threshold")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, amountResponse{Amount: s.repo.BulkDiscount(total, threshold)})
}

// loyaltyDiscountHandler computes a loyalty discount from current revenue.
// @Summary Loyalty discount
// @Produce json
// @Param count query integer true "Purchase count"
// @Success 200 {object} amountResponse
// @Router /discounts/loyalty [get]
func (s *Server) loyaltyDiscountHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "loyaltyDiscountHandler")
	defer span.End()

	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil {
		http.Error(w, "count: invalid integer", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, amountResponse{Amount: s.repo.LoyaltyDiscount(count)})
}

// statsHandler returns the statistics report.
// @Summary Statistics
// @Produce json
// @Success 200 {object} nursery.Statistics
// @Router /stats [get]
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "statsHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, nursery.Summarize(s.repo, s.stats))
}

type countResponse struct {
	Count int `json:"count"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type amountResponse struct {
	Amount float64 `json:"amount"`
}

func queryFloat(r *http.Request, name string) (float64, error) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0, errors.New(name + ": invalid number")
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
