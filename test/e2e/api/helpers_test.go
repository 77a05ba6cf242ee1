package api_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

/*
 * Common constants and helper functions for API end-to-end tests.
 * This includes container setup, staff sessions, and assertions.
 */

const (
	testImageName = "lexdesk-api-test:latest"

	rootEmail     = "root@estudio.example"
	rootPassword  = "Root-Password-123"
	adminEmail    = "ana@estudio.example"
	adminPhone    = "+598 99 123 456"
	adminPassword = "Admin-Password-123"
	webOrigin     = "https://estudio.example"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building API Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up API Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/api/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupAPIContainer starts the API in a container and returns its base URL.
// extra overrides or adds environment variables.
func setupAPIContainer(t *testing.T, extra map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ENV":             "test",
		"LOG_LEVEL":       "info",
		"LOG_FORMAT":      "json",
		"JWT_SECRET":      "e2e-session-secret",
		"PII_ENC_KEY_B64": base64.StdEncoding.EncodeToString([]byte(strings.Repeat("e", 32))),
		"WEB_ORIGIN":      webOrigin,
		"ROOT_EMAIL":      rootEmail,
		"ROOT_PASSWORD":   rootPassword,
		"ADMIN1_EMAIL":    adminEmail,
		"ADMIN1_PHONE":    adminPhone,
		"ADMIN1_PASSWORD": adminPassword,
	}
	maps.Copy(env, extra)

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// newClient returns an SDK client that presents the configured web origin.
func newClient(t *testing.T, baseURL string) *lexsdk.SDKClient {
	t.Helper()
	client, err := lexsdk.NewSDKClient(baseURL)
	require.NoError(t, err)
	client.Origin = webOrigin
	return client
}

// loginAdmin returns a client holding an admin session.
func loginAdmin(t *testing.T, baseURL string) *lexsdk.SDKClient {
	t.Helper()
	client := newClient(t, baseURL)
	user, err := client.Login(t.Context(), lexsdk.LoginRequest{
		Email:    adminEmail,
		Password: adminPassword,
		Phone:    adminPhone,
	})
	require.NoError(t, err)
	require.Equal(t, "admin", user.Role)
	return client
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *lexsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertStatus verifies err is an API error with the given status code.
func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, lexsdk.StatusCode(err), "unexpected error: %v", err)
}
