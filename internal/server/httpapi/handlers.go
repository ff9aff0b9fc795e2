// Package httpapi exposes the backend over a JSON REST API.
//
// Routes mirror what the CLI client speaks: token-based auth under
// /api/auth, then an authenticated group for items, records, image
// presigning and per-item statistics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stockbook-app/stockbook/internal/common"
	"github.com/stockbook-app/stockbook/internal/logging"
	"github.com/stockbook-app/stockbook/internal/server/models"
	"github.com/stockbook-app/stockbook/internal/server/services"
	"github.com/stockbook-app/stockbook/internal/stats"
)

// UserService is the auth surface the handlers need.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	ValidateAccessToken(tokenString string) (string, error)
}

// ItemService is the catalog surface the handlers need.
type ItemService interface {
	Create(ctx context.Context, userID, clientKey, name, size, imageURL string) (*models.Item, error)
	List(ctx context.Context, userID string) ([]models.Item, error)
}

// RecordService is the ledger surface the handlers need.
type RecordService interface {
	Create(ctx context.Context, userID string, itemID int64, clientKey, recType string, price *int64, count int64, date, memo string) (*models.Record, error)
	List(ctx context.Context, userID string, itemID int64) ([]models.Record, error)
	Stats(ctx context.Context, userID string, itemID int64, f stats.Filter) (*stats.Summary, error)
}

// ImageService signs object storage URLs for item images.
type ImageService interface {
	GetPresignedPutUrl(ctx context.Context) (string, string, error)
}

// Handler bundles the services behind the HTTP routes.
type Handler struct {
	users   UserService
	items   ItemService
	records RecordService
	images  ImageService
	logger  logging.Logger
}

// NewHandler constructs a Handler.
func NewHandler(users UserService, items ItemService, records RecordService, images ImageService, logger logging.Logger) *Handler {
	return &Handler{users: users, items: items, records: records, images: images, logger: logger}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type itemResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type createItemRequest struct {
	ClientKey string `json:"clientKey"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

type recordResponse struct {
	ID     int64  `json:"id"`
	ItemID int64  `json:"itemId"`
	Type   string `json:"type"`
	Price  *int64 `json:"price,omitempty"`
	Count  int64  `json:"count"`
	Date   string `json:"date"`
	Memo   string `json:"memo,omitempty"`
}

type createRecordRequest struct {
	ClientKey string `json:"clientKey"`
	Type      string `json:"type"`
	Price     *int64 `json:"price,omitempty"`
	Count     int64  `json:"count"`
	Date      string `json:"date"`
	Memo      string `json:"memo,omitempty"`
}

func toItemResponse(item *models.Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Size:      item.Size,
		ImageURL:  item.ImageURL,
		CreatedAt: item.CreatedAt,
	}
}

func toRecordResponse(rec *models.Record) recordResponse {
	return recordResponse{
		ID:     rec.ID,
		ItemID: rec.ItemID,
		Type:   rec.Type,
		Price:  rec.Price,
		Count:  rec.Count,
		Date:   rec.Date,
		Memo:   rec.Memo,
	}
}

var errBadRequest = errors.New("bad request")

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decode(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := h.users.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, err)
			return
		}
		h.logger.Error(r.Context(), "register failed", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrorInternal)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": user.ID, "username": user.UserName})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decode(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pair, err := h.users.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, common.ErrorUnauthorized)
			return
		}
		h.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrorInternal)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pair, err := h.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		h.logger.Error(r.Context(), "token refresh failed", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrorInternal)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context(), userID(r.Context()))
	if err != nil {
		h.logger.Error(r.Context(), "list items failed", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrorInternal)
		return
	}

	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.items.Create(r.Context(), userID(r.Context()), req.ClientKey, req.Name, req.Size, req.ImageURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

func itemIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errBadRequest
	}
	return id, nil
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	recs, err := h.records.List(r.Context(), userID(r.Context()), itemID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		h.logger.Error(r.Context(), "list records failed", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrorInternal)
		return
	}

	out := make([]recordResponse, 0, len(recs))
	for i := range recs {
		out = append(out, toRecordResponse(&recs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req createRecordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := h.records.Create(r.Context(), userID(r.Context()), itemID,
		req.ClientKey, req.Type, req.Price, req.Count, req.Date, req.Memo)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

func (h *Handler) presignImage(w http.ResponseWriter, r *http.Request) {
	key, url, err := h.images.GetPresignedPutUrl(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "presign failed", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrorInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
}

// itemStats serves the aggregated statistics of one item. Without query
// parameters the whole ledger is aggregated; from and to (YYYY-MM-DD,
// inclusive) restrict the range.
func (h *Handler) itemStats(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	filter := stats.Filter{Mode: stats.RangeAll}
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			writeError(w, http.StatusBadRequest, errBadRequest)
			return
		}
		filter = stats.Filter{Mode: stats.RangeCustom, From: from, To: to}
	}

	summary, err := h.records.Stats(r.Context(), userID(r.Context()), itemID, filter)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		h.logger.Error(r.Context(), "stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrorInternal)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
