package gateway

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Paths served by the gateway. Sensor firmware posts to PathIngest.
const (
	PathIngest  = "/sensordata"
	PathHistory = "/showdata"
)

// maxBodyBytes bounds an ingested request body.
const maxBodyBytes = 1 << 16

// Results recorded on the ingest counter.
const (
	resultSaved    = "saved"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

// Options configures New.
type Options struct {
	Store    Store
	Logger   *zap.Logger
	// Ingested counts ingest requests by result; it needs one "result" label.
	Ingested *prometheus.CounterVec
	// Now stamps readings; defaults to time.Now.
	Now      func() time.Time
}

// Gateway serves the sensor ingestion and history endpoints.
type Gateway struct {
	store    Store
	logger   *zap.Logger
	ingested *prometheus.CounterVec
	now      func() time.Time
}

// New creates a Gateway over opts.Store.
func New(opts Options) *Gateway {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Gateway{
		store:    opts.Store,
		logger:   opts.Logger,
		ingested: opts.Ingested,
		now:      opts.Now,
	}
}

// Register mounts the gateway endpoints on r.
func (g *Gateway) Register(r chi.Router) {
	r.Post(PathIngest, g.ingest)
	r.Get(PathHistory, g.history)
}

// status is the body of every ingest response.
type status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ingestRequest is what sensor nodes post. Only pump_on is required.
type ingestRequest struct {
	Temperature  *float64 `json:"temperature"`
	AirHumidity  *float64 `json:"air_humidity"`
	SoilMoisture *int     `json:"soil_moisture"`
	PumpOn       *bool    `json:"pump_on"`
}

func (g *Gateway) ingest(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		g.reject(w, "Request must be JSON")
		return
	}

	var body ingestRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		g.reject(w, "Invalid JSON body")
		return
	}
	if body.PumpOn == nil {
		g.reject(w, "Missing 'pump_on'")
		return
	}

	reading := Reading{
		Timestamp:    g.now().Format(TimestampLayout),
		Temperature:  body.Temperature,
		AirHumidity:  body.AirHumidity,
		SoilMoisture: body.SoilMoisture,
		PumpOn:       *body.PumpOn,
	}
	if err := g.store.Save(r.Context(), reading); err != nil {
		g.logger.Error("failed to save reading", zap.Error(err))
		g.count(resultFailed)
		writeJSON(w, http.StatusInternalServerError, status{"error", "Data received but failed DB save"})
		return
	}

	g.logger.Debug("reading saved",
		zap.String("timestamp", reading.Timestamp),
		zap.Bool("pump_on", reading.PumpOn),
	)
	g.count(resultSaved)
	writeJSON(w, http.StatusOK, status{"success", "Data received and saved"})
}

func (g *Gateway) reject(w http.ResponseWriter, msg string) {
	g.count(resultRejected)
	writeJSON(w, http.StatusBadRequest, status{"error", msg})
}

func (g *Gateway) count(result string) {
	if g.ingested != nil {
		g.ingested.WithLabelValues(result).Inc()
	}
}

// history returns stored readings newest first. ?limit=N keeps the latest N.
func (g *Gateway) history(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, status{"error", "limit must be a positive integer"})
			return
		}
		limit = n
	}

	readings, err := g.store.Latest(r.Context(), limit)
	if err != nil {
		g.logger.Error("failed to load readings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, status{"error", "Failed to load readings"})
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
