package connectors

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"exchangenorm/src/builder"
	"exchangenorm/src/errs"
	"exchangenorm/src/native"
	"exchangenorm/src/profile"
	"exchangenorm/src/utils"
)

// Transport sends a built request and returns the data payload of a
// successful response.
type Transport interface {
	Do(ctx context.Context, r *builder.Request) (interface{}, error)
}

// RESTTransport signs requests with the account's API key and unwraps the
// response envelope. Failures come back as classified errors.
type RESTTransport struct {
	profile profile.Profile
	cfg     Config
	http    *resty.Client
	limiter *rate.Limiter
	now     func() int64
}

func isRetryableResp(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	if code >= 500 && code <= 599 {
		return true
	}
	return code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

func NewRESTTransport(p profile.Profile, cfg Config) *RESTTransport {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = p.BaseURL
	}
	retries := cfg.RetryAttempts - 1
	if retries < 0 {
		retries = 0
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		AddRetryCondition(isRetryableResp)

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &RESTTransport{
		profile: p,
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		now:     utils.Milliseconds,
	}
}

// signRequest is base64(HMAC_SHA256(secret, timestamp + method + requestPath + body)).
func signRequest(secret, timestamp, method, requestPath, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + method + requestPath + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// encodeQuery renders query fields in key order so the signed path is stable.
func encodeQuery(q native.Object) string {
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := url.Values{}
	for _, k := range keys {
		values.Add(k, native.ToString(q[k]))
	}
	return values.Encode()
}

func (t *RESTTransport) Do(ctx context.Context, r *builder.Request) (interface{}, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, errs.Wrap(errs.ErrRateLimitExceeded, err, "waiting for a request slot")
	}

	query := encodeQuery(r.Query)
	requestPath := r.Path
	if query != "" {
		requestPath += "?" + query
	}
	var body string
	if r.Body != nil {
		raw, err := native.Encode(r.Body)
		if err != nil {
			return nil, errs.Wrap(errs.ErrBadRequest, err, "encoding %s body", r.Endpoint)
		}
		body = string(raw)
	}

	req := t.http.R().SetContext(ctx).SetHeader("Content-Type", "application/json")
	if query != "" {
		req.SetQueryString(query)
	}
	if body != "" {
		req.SetBody(body)
	}
	if t.cfg.Sandbox && t.profile.SandboxHeader != "" {
		req.SetHeader(t.profile.SandboxHeader, "1")
	}
	if r.Private {
		if t.cfg.APIKey == "" || t.cfg.APISecret == "" {
			return nil, errs.New(errs.ErrAuthenticationError, "%s requires API credentials", r.Endpoint)
		}
		timestamp := utils.ISO8601(t.now())
		req.SetHeader("OK-ACCESS-KEY", t.cfg.APIKey).
			SetHeader("OK-ACCESS-SIGN", signRequest(t.cfg.APISecret, timestamp, r.Method, requestPath, body)).
			SetHeader("OK-ACCESS-TIMESTAMP", timestamp).
			SetHeader("OK-ACCESS-PASSPHRASE", t.cfg.Passphrase)
	}

	logger.WithFields(map[string]interface{}{
		"exchange": t.profile.ID,
		"endpoint": r.Endpoint.String(),
		"method":   r.Method,
		"path":     requestPath,
		"body":     body,
	}).Debug("Exchange HTTP request")

	start := time.Now()
	resp, err := req.Execute(r.Method, r.Path)
	if err != nil {
		logger.WithError(err).WithField("endpoint", r.Endpoint.String()).Error("Exchange HTTP request failed")
		return nil, errs.Wrap(errs.ErrNetworkError, err, "%s %s", r.Method, r.Path)
	}
	logger.WithFields(map[string]interface{}{
		"endpoint": r.Endpoint.String(),
		"status":   resp.StatusCode(),
		"elapsed":  time.Since(start).String(),
		"body":     string(resp.Body()),
	}).Debug("Exchange HTTP response")

	data, err := t.unwrap(resp.StatusCode(), resp.Body(), isBatch(r))
	if err != nil {
		logger.WithError(err).WithFields(map[string]interface{}{
			"endpoint": r.Endpoint.String(),
			"status":   resp.StatusCode(),
		}).Error("Exchange returned an error")
		return nil, err
	}
	return data, nil
}

func isBatch(r *builder.Request) bool {
	_, ok := r.Body.([]interface{})
	return ok
}

// unwrap checks the envelope. Batch responses with element data are handed
// back as they are so every element is judged on its own code.
func (t *RESTTransport) unwrap(status int, raw []byte, batch bool) (interface{}, error) {
	env := t.profile.Envelope
	mapper := t.profile.Mapper()

	obj, err := native.DecodeObject(raw)
	if err != nil {
		if status >= http.StatusBadRequest {
			return nil, mapper.Classify(errs.Failure{HTTPStatus: status, Message: string(raw)})
		}
		return nil, errs.Wrap(errs.ErrBadResponse, err, "undecodable %s response", t.profile.ID)
	}
	code := native.String(obj, env.Code)
	data := obj[env.Data]
	if status < http.StatusBadRequest && code == env.SuccessCode {
		return data, nil
	}

	elements := native.Objects(data)
	if batch && status < http.StatusBadRequest && len(elements) > 0 {
		return data, nil
	}
	f := errs.Failure{
		HTTPStatus: status,
		Code:       code,
		Message:    native.String(obj, env.Message),
	}
	for _, el := range elements {
		c := native.String(el, env.ElementCode)
		if c == "" || c == env.SuccessCode {
			continue
		}
		f.Elements = append(f.Elements, errs.ElementFailure{Code: c, Message: native.String(el, env.ElementMessage)})
	}
	return nil, mapper.Classify(f)
}
