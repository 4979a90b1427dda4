// Package postgrest implements store.Store against a PostgREST endpoint
// (for example a hosted Supabase project) using resty.
package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/go-visitors/internal/store"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// apiError is the PostgREST error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

type Store struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// New creates a client for baseURL (the project URL, without /rest/v1).
// apiKey is sent both as apikey header and bearer token.
func New(baseURL, apiKey string, logger *zap.Logger) *Store {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/rest/v1").
		SetTimeout(15*time.Second).
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Store{httpClient: client, logger: logger}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if x == nil {
			return "null"
		}
		return x.UTC().Format(time.RFC3339Nano)
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// params renders filters, ordering and limit as PostgREST query parameters.
func params(q store.Query, withOrder bool) url.Values {
	v := url.Values{}
	for _, f := range q.Filters {
		switch f.Op {
		case store.OpILike:
			v.Add(f.Column, "ilike.*"+formatValue(f.Value)+"*")
		case store.OpIsNull:
			v.Add(f.Column, "is.null")
		default:
			v.Add(f.Column, string(f.Op)+"."+formatValue(f.Value))
		}
	}
	if withOrder {
		if len(q.Order) > 0 {
			parts := make([]string, 0, len(q.Order))
			for _, o := range q.Order {
				dir := "asc"
				if o.Desc {
					dir = "desc"
				}
				parts = append(parts, o.Column+"."+dir)
			}
			v.Set("order", strings.Join(parts, ","))
		}
		if q.Limit > 0 {
			v.Set("limit", strconv.Itoa(q.Limit))
		}
	}
	return v
}

func (s *Store) check(resp *resty.Response, err error, op, table string) error {
	if err != nil {
		s.logger.Error("postgrest call failed", zap.String("op", op), zap.String("table", table), zap.Error(err))
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
	if resp.IsError() {
		var apiErr apiError
		_ = json.Unmarshal(resp.Body(), &apiErr)
		s.logger.Error("postgrest returned error",
			zap.String("op", op),
			zap.String("table", table),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("code", apiErr.Code),
			zap.String("message", apiErr.Message),
		)
		msg := apiErr.Message
		if msg == "" {
			msg = resp.String()
		}
		return fmt.Errorf("%s %s: status %d: %s", op, table, resp.StatusCode(), msg)
	}
	return nil
}

func (s *Store) FindOne(ctx context.Context, q store.Query, dest any) error {
	if err := q.Validate(); err != nil {
		return err
	}
	var rows []json.RawMessage
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params(q.Take(1), true)).
		SetQueryParam("select", "*").
		SetResult(&rows).
		Get("/" + q.Table)
	if err := s.check(resp, err, "find", q.Table); err != nil {
		return err
	}
	if len(rows) == 0 {
		return store.ErrNotFound
	}
	if err := json.Unmarshal(rows[0], dest); err != nil {
		return fmt.Errorf("decode %s: %w", q.Table, err)
	}
	return nil
}

func (s *Store) FindMany(ctx context.Context, q store.Query, dest any) error {
	if err := q.Validate(); err != nil {
		return err
	}
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params(q, true)).
		SetQueryParam("select", "*").
		Get("/" + q.Table)
	if err := s.check(resp, err, "list", q.Table); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), dest); err != nil {
		return fmt.Errorf("decode %s: %w", q.Table, err)
	}
	return nil
}

// Count asks for an exact count and reads the total from Content-Range
// ("0-9/42" or "*/0").
func (s *Store) Count(ctx context.Context, q store.Query) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params(q, false)).
		SetQueryParam("select", "id").
		SetQueryParam("limit", "1").
		SetHeader("Prefer", "count=exact").
		Get("/" + q.Table)
	if err := s.check(resp, err, "count", q.Table); err != nil {
		return 0, err
	}
	cr := resp.Header().Get("Content-Range")
	i := strings.LastIndex(cr, "/")
	if i < 0 {
		return 0, fmt.Errorf("count %s: missing Content-Range", q.Table)
	}
	n, err := strconv.ParseInt(cr[i+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("count %s: bad Content-Range %q", q.Table, cr)
	}
	return n, nil
}

// Insert posts record and decodes the stored representation back into it,
// picking up server defaults.
func (s *Store) Insert(ctx context.Context, table string, record any) error {
	if err := store.From(table).Validate(); err != nil {
		return err
	}
	var rows []json.RawMessage
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(record).
		SetResult(&rows).
		Post("/" + table)
	if err := s.check(resp, err, "insert", table); err != nil {
		return err
	}
	if len(rows) > 0 {
		if err := json.Unmarshal(rows[0], record); err != nil {
			return fmt.Errorf("decode %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) Update(ctx context.Context, q store.Query, patch map[string]any) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if len(q.Filters) == 0 {
		return 0, fmt.Errorf("update %s: refusing unfiltered update", q.Table)
	}
	var rows []json.RawMessage
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params(q, false)).
		SetHeader("Prefer", "return=representation").
		SetBody(patch).
		SetResult(&rows).
		Patch("/" + q.Table)
	if err := s.check(resp, err, "update", q.Table); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *Store) Remove(ctx context.Context, q store.Query) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if len(q.Filters) == 0 {
		return 0, fmt.Errorf("remove %s: refusing unfiltered delete", q.Table)
	}
	var rows []json.RawMessage
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params(q, false)).
		SetHeader("Prefer", "return=representation").
		SetResult(&rows).
		Delete("/" + q.Table)
	if err := s.check(resp, err, "remove", q.Table); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

// Ping requests the schema root; any non-5xx answer means the endpoint is up.
func (s *Store) Ping(ctx context.Context) error {
	resp, err := s.httpClient.R().SetContext(ctx).Get("/")
	if err != nil {
		return err
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("postgrest ping: status %d", resp.StatusCode())
	}
	return nil
}

var _ store.Store = (*Store)(nil)
