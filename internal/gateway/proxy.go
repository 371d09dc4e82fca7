// Package gateway implements the thin validating gateway: it checks header
// and parameter shape, rate-limits callers and forwards everything else to
// the server unchanged.
package gateway

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/identity"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

// Proxy forwards requests to the server and relays the response unchanged.
type Proxy struct {
	base   *url.URL
	client *http.Client
	logger *zerolog.Logger
}

func NewProxy(serverURL string, logger *zerolog.Logger) (*Proxy, error) {
	base, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Proxy{base: base, client: client, logger: logger}, nil
}

// Forward relays the request to the server with the same method, path,
// query and body, and copies the server's status and body back.
func (p *Proxy) Forward(c *gin.Context) {
	var body io.Reader
	if c.Request.Body != nil {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "validation", Message: "failed to read request body"})
			return
		}
		body = bytes.NewReader(raw)
	}

	target := *p.base
	target.Path = c.Request.URL.Path
	target.RawQuery = c.Request.URL.RawQuery

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target.String(), body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal", Message: "failed to build upstream request"})
		return
	}
	if ct := c.GetHeader("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if id := c.GetHeader(identity.Header); id != "" {
		req.Header.Set(identity.Header, id)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("upstream request failed")
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "bad_gateway", Message: "server is unreachable"})
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "bad_gateway", Message: "failed to read server response"})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, data)
}
