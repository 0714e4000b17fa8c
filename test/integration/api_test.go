// Package integration provides end-to-end tests for the PIN block API, driving
// the real DI container through an httptest server.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/pinshield/internal/app"
	"github.com/allisson/pinshield/internal/config"
	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
	cryptoService "github.com/allisson/pinshield/internal/crypto/service"
	"github.com/allisson/pinshield/internal/httputil"
	"github.com/allisson/pinshield/internal/pinblock/http/dto"
)

const (
	testRoutePrefix = "/api"
	testPAN         = "4012345678901234"
	otherPAN        = "4111111111111111"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	server    *httptest.Server
	cancel    context.CancelFunc
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// wrap fetches the public key and seals {pin, pan} the way a client does.
func (ctx *integrationTestContext) wrap(t *testing.T, pin, pan string) string {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodGet, testRoutePrefix+"/public-key", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var publicKeyResponse dto.PublicKeyResponse
	require.NoError(t, json.Unmarshal(body, &publicKeyResponse))

	publicKey, err := cryptoDomain.ParsePublicKeyPEM([]byte(publicKeyResponse.PublicKey))
	require.NoError(t, err)

	envelope, err := cryptoService.NewRSAOAEPTransportCipher().Wrap(
		&cryptoDomain.TransportPayload{PIN: pin, PAN: pan},
		publicKey,
	)
	require.NoError(t, err)
	return envelope
}

// setupIntegrationTest builds the container for zoneKeyHex and serves its router.
func setupIntegrationTest(t *testing.T, zoneKeyHex, decodeMode string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServerHost:        "localhost",
		ServerPort:        0,
		ServerRoutePrefix: testRoutePrefix,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "error",
		ZoneKeyHex:        zoneKeyHex,
		TransportKeyBits:  2048,
		PinDecodeMode:     decodeMode,
		RateLimitEnabled:  false,
		MetricsEnabled:    true,
		MetricsNamespace:  "pinshield_it",
	}

	container := app.NewContainer(cfg)

	runCtx, cancel := context.WithCancel(context.Background())

	httpSrv, err := container.HTTPServer(runCtx)
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	return &integrationTestContext{
		container: container,
		server:    httptest.NewServer(handler),
		cancel:    cancel,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	ctx.server.Close()
	ctx.cancel()

	if err := ctx.container.Shutdown(context.Background()); err != nil {
		t.Logf("Warning: container shutdown error: %v", err)
	}
}

// TestIntegration_PinBlock_CompleteFlow runs the encrypt and verify flows for both
// zone cipher variants.
func TestIntegration_PinBlock_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name           string
		zoneKeyHex     string
		encryptedBlock string
		badBlock       string
		badBlockCode   string
	}{
		{
			name:           "AES256",
			zoneKeyHex:     config.DemoZoneKeyHex,
			encryptedBlock: "978E708B09074A084055189D4F6B77D7",
			badBlock:       "0011223344556677",
			badBlockCode:   "crypto_error",
		},
		{
			name:           "TripleDES",
			zoneKeyHex:     "0123456789ABCDEFFEDCBA9876543210",
			encryptedBlock: "BF5D44D08D106392",
			badBlock:       "00112233445566778899",
			badBlockCode:   "crypto_error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.zoneKeyHex, "strict")
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_Health", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.JSONEq(t, `{"status":"healthy"}`, string(body))

				resp, body = ctx.makeRequest(t, http.MethodGet, "/ready", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.JSONEq(t, `{"status":"ready"}`, string(body))
			})

			t.Run("02_PublicKey", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, testRoutePrefix+"/public-key", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

				var response dto.PublicKeyResponse
				require.NoError(t, json.Unmarshal(body, &response))

				publicKey, err := cryptoDomain.ParsePublicKeyPEM([]byte(response.PublicKey))
				require.NoError(t, err)
				assert.Equal(t, 2048, publicKey.N.BitLen())
			})

			t.Run("03_Encrypt", func(t *testing.T) {
				envelope := ctx.wrap(t, "1234", testPAN)

				resp, body := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/encrypt",
					dto.EncryptRequest{EncryptedData: envelope})
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response dto.EncryptResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "041234FFFFFFFFFF", response.PinField)
				assert.Equal(t, "0000234567890123", response.PanField)
				assert.Equal(t, "041217BA9876FEDC", response.ClearBlock)
				assert.Equal(t, tc.encryptedBlock, response.EncryptedBlock)
			})

			t.Run("04_Decrypt", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/decrypt",
					dto.DecryptRequest{EncryptedBlockHex: tc.encryptedBlock, PAN: testPAN})
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response dto.DecryptResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "041234FFFFFFFFFF", response.PinField)
				assert.Equal(t, "1234", response.ExtractedPIN)
			})

			t.Run("05_Decrypt_WrongPAN", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/decrypt",
					dto.DecryptRequest{EncryptedBlockHex: tc.encryptedBlock, PAN: otherPAN})
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				var response httputil.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "protocol_error", response.Error)
			})

			t.Run("06_Decrypt_BadBlockLength", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/decrypt",
					dto.DecryptRequest{EncryptedBlockHex: tc.badBlock, PAN: testPAN})
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				var response httputil.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, tc.badBlockCode, response.Error)
				assert.Equal(t, "Decryption failed", response.Message)
			})

			t.Run("07_Encrypt_InvalidPIN", func(t *testing.T) {
				envelope := ctx.wrap(t, "12", testPAN)

				resp, body := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/encrypt",
					dto.EncryptRequest{EncryptedData: envelope})
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

				var response httputil.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "invalid_input", response.Error)
			})

			t.Run("08_Encrypt_TamperedEnvelope", func(t *testing.T) {
				envelope := []byte(ctx.wrap(t, "1234", testPAN))
				if envelope[10] == 'A' {
					envelope[10] = 'B'
				} else {
					envelope[10] = 'A'
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/encrypt",
					dto.EncryptRequest{EncryptedData: string(envelope)})
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				var response httputil.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "crypto_error", response.Error)
			})

			t.Run("09_RequestValidation", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/decrypt",
					dto.DecryptRequest{EncryptedBlockHex: tc.encryptedBlock, PAN: "12345"})
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/encrypt",
					dto.EncryptRequest{EncryptedData: ""})
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			t.Run("10_RoundTripAllLengths", func(t *testing.T) {
				pans := []string{"5000000000011", "4012345678901234", "6011000990139424123"}
				pins := []string{"0000", "98765", "123456789012"}

				for _, pan := range pans {
					for _, pin := range pins {
						resp, body := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/encrypt",
							dto.EncryptRequest{EncryptedData: ctx.wrap(t, pin, pan)})
						require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

						var encrypted dto.EncryptResponse
						require.NoError(t, json.Unmarshal(body, &encrypted))

						resp, body = ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/decrypt",
							dto.DecryptRequest{EncryptedBlockHex: encrypted.EncryptedBlock, PAN: pan})
						require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

						var decrypted dto.DecryptResponse
						require.NoError(t, json.Unmarshal(body, &decrypted))
						assert.Equal(t, pin, decrypted.ExtractedPIN)
						assert.Equal(t, encrypted.PinField, decrypted.PinField)
					}
				}
			})
		})
	}
}

// TestIntegration_PinBlock_LenientDecode checks that lenient mode returns the
// garbage PIN a wrong PAN produces instead of an error.
func TestIntegration_PinBlock_LenientDecode(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, config.DemoZoneKeyHex, "lenient")
	defer teardownIntegrationTest(t, ctx)

	resp, body := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/decrypt",
		dto.DecryptRequest{EncryptedBlockHex: "978E708B09074A084055189D4F6B77D7", PAN: otherPAN})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var response dto.DecryptResponse
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "041206AB8967EFCD", response.PinField)
	assert.Equal(t, "1206", response.ExtractedPIN)
}

// TestIntegration_Metrics checks that the business metrics reach the metrics server.
func TestIntegration_Metrics(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, config.DemoZoneKeyHex, "strict")
	defer teardownIntegrationTest(t, ctx)

	resp, _ := ctx.makeRequest(t, http.MethodPost, testRoutePrefix+"/decrypt",
		dto.DecryptRequest{EncryptedBlockHex: "978E708B09074A084055189D4F6B77D7", PAN: testPAN})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	metricsServer, err := ctx.container.MetricsServer()
	require.NoError(t, err)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	output := w.Body.String()
	assert.Contains(t, output, "pinshield_it_pin_block_operations_total")
	assert.Contains(t, output, `operation="decrypt"`)
	assert.Contains(t, output, "pinshield_it_http_requests_total")
}
