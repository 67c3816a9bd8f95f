package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"time"

	"uptime-monitor/config"
	"uptime-monitor/internals/app"
	"uptime-monitor/internals/modules/check"
	"uptime-monitor/internals/store"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

const (
	phone    = "155512345678"
	password = "s3cret-passw0rd"
)

var _ = Describe("API", func() {
	var (
		container *app.Container
		server    *httptest.Server
	)

	BeforeEach(func() {
		dir := GinkgoT().TempDir()
		cfg := &config.Config{
			Env:         "test",
			ServiceName: "uptime-monitor",
			Port:        8080,
			Scheduler:   config.SchedulerConfig{Interval: time.Minute},
			Executor:    config.ExecutorConfig{MaxConcurrent: 4},
			Rotation:    config.RotationConfig{Interval: time.Hour},
			Log:         config.LogConfig{Dir: filepath.Join(dir, "logs")},
			Store:       config.StoreConfig{Driver: "file", Dir: filepath.Join(dir, "data")},
			Inflight:    config.InflightConfig{Driver: "local", TTL: time.Minute},
			Checks:      config.ChecksConfig{MaxPerUser: 2},
			Alert:       config.AlertConfig{Driver: "log", WorkerCount: 1, QueueSize: 4},
			Auth:        config.AuthConfig{Secret: "0123456789abcdef0123", ExpiryMin: 5},
		}
		logger := zerolog.New(io.Discard)

		var err error
		container, err = app.NewContainer(context.Background(), cfg, &logger)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(container.Shutdown)

		server = httptest.NewServer(app.RegisterRoutes(container))
		DeferCleanup(server.Close)
	})

	do := func(method, path, token string, body any) (int, envelope) {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		}
		req, err := http.NewRequest(method, server.URL+"/api/v1"+path, reader)
		Expect(err).NotTo(HaveOccurred())
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		var env envelope
		Expect(json.NewDecoder(resp.Body).Decode(&env)).To(Succeed())
		return resp.StatusCode, env
	}

	register := func() {
		status, _ := do(http.MethodPost, "/users", "", map[string]any{
			"phone": phone, "firstName": "Ada", "lastName": "Lovelace",
			"password": password, "tosAgreement": true,
		})
		Expect(status).To(Equal(http.StatusCreated))
	}

	login := func() (token, id string) {
		status, env := do(http.MethodPost, "/tokens", "", map[string]any{"phone": phone, "password": password})
		Expect(status).To(Equal(http.StatusCreated))
		var tok struct {
			ID          string `json:"id"`
			AccessToken string `json:"accessToken"`
		}
		Expect(json.Unmarshal(env.Data, &tok)).To(Succeed())
		Expect(tok.AccessToken).NotTo(BeEmpty())
		return tok.AccessToken, tok.ID
	}

	newCheck := map[string]any{
		"protocol": "https", "url": "example.com/health", "method": "get",
		"successCodes": []int{200, 201}, "timeoutSeconds": 3,
	}

	It("registers, logs in and manages checks end to end", func() {
		register()
		token, _ := login()

		status, env := do(http.MethodPost, "/checks", token, newCheck)
		Expect(status).To(Equal(http.StatusCreated))
		var created struct {
			ID string `json:"id"`
		}
		Expect(json.Unmarshal(env.Data, &created)).To(Succeed())
		Expect(created.ID).To(HaveLen(check.IDLength))

		// the scheduler sees exactly what the API stored
		var stored check.Check
		Expect(store.ReadJSON(context.Background(), container.Records, store.Checks, created.ID, &stored)).To(Succeed())
		Expect(check.Validate(&stored)).To(Succeed())
		Expect(stored.OwnerPhone).To(Equal(phone))
		Expect(stored.HasBeenChecked()).To(BeFalse())

		status, _ = do(http.MethodPut, "/checks/"+created.ID, token, map[string]any{"timeoutSeconds": 5})
		Expect(status).To(Equal(http.StatusOK))

		status, env = do(http.MethodGet, "/users/"+phone, token, nil)
		Expect(status).To(Equal(http.StatusOK))
		var u struct {
			Checks []string `json:"checks"`
		}
		Expect(json.Unmarshal(env.Data, &u)).To(Succeed())
		Expect(u.Checks).To(ConsistOf(created.ID))

		status, _ = do(http.MethodDelete, "/checks/"+created.ID, token, nil)
		Expect(status).To(Equal(http.StatusOK))

		status, env = do(http.MethodGet, "/checks/"+created.ID, token, nil)
		Expect(status).To(Equal(http.StatusNotFound))
		Expect(env.Success).To(BeFalse())
	})

	It("enforces the per-user check limit", func() {
		register()
		token, _ := login()

		for range 2 {
			status, _ := do(http.MethodPost, "/checks", token, newCheck)
			Expect(status).To(Equal(http.StatusCreated))
		}

		status, env := do(http.MethodPost, "/checks", token, newCheck)
		Expect(status).To(Equal(http.StatusUnprocessableEntity))
		Expect(env.Error.Kind).To(Equal("limit_reached"))
	})

	It("rejects invalid checks", func() {
		register()
		token, _ := login()

		bad := map[string]any{
			"protocol": "ftp", "url": "example.com", "method": "get",
			"successCodes": []int{200}, "timeoutSeconds": 9,
		}
		status, env := do(http.MethodPost, "/checks", token, bad)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(env.Error.Kind).To(Equal("invalid_input"))
	})

	It("refuses duplicate users and wrong passwords", func() {
		register()

		status, _ := do(http.MethodPost, "/users", "", map[string]any{
			"phone": phone, "firstName": "A", "lastName": "B",
			"password": password, "tosAgreement": true,
		})
		Expect(status).To(Equal(http.StatusConflict))

		status, _ = do(http.MethodPost, "/tokens", "", map[string]any{"phone": phone, "password": "wrong-password"})
		Expect(status).To(Equal(http.StatusUnauthorized))
	})

	It("requires a live token and ownership", func() {
		register()
		token, tokenID := login()

		status, _ := do(http.MethodGet, "/users/"+phone, "", nil)
		Expect(status).To(Equal(http.StatusUnauthorized))

		status, _ = do(http.MethodGet, "/users/199999999999", token, nil)
		Expect(status).To(Equal(http.StatusForbidden))

		status, _ = do(http.MethodDelete, "/tokens/"+tokenID, token, nil)
		Expect(status).To(Equal(http.StatusOK))

		status, _ = do(http.MethodGet, "/users/"+phone, token, nil)
		Expect(status).To(Equal(http.StatusUnauthorized))
	})

	It("deletes a user's checks with the user", func() {
		register()
		token, _ := login()

		status, env := do(http.MethodPost, "/checks", token, newCheck)
		Expect(status).To(Equal(http.StatusCreated))
		var created struct {
			ID string `json:"id"`
		}
		Expect(json.Unmarshal(env.Data, &created)).To(Succeed())

		status, _ = do(http.MethodDelete, "/users/"+phone, token, nil)
		Expect(status).To(Equal(http.StatusOK))

		ids, err := container.Records.List(context.Background(), store.Checks)
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(BeEmpty())
	})
})
