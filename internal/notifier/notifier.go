// Package notifier delivers desktop notifications through the bump-tray
// companion app. The tray writes "port|pid|secret" to a lockfile and accepts
// authenticated JSON POSTs on 127.0.0.1.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning means there is no live tray app to deliver to.
var ErrTrayNotRunning = errors.New(constants.TrayExecutablePrefix + " is not running")

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
	Alarm      bool   `json:"alarm,omitempty"`
}

// Message is a single notification.
type Message struct {
	Title string
	Body  string
	Alarm bool
}

// Text renders the message as the single line the tray displays.
func (m Message) Text() string {
	if m.Body == "" {
		return m.Title
	}
	return m.Title + ": " + m.Body
}

type Notifier struct {
	lockfileDir string
	client      *http.Client
	retries     int
	retryDelay  time.Duration
}

// New returns a Notifier. lockfileDir overrides where the tray lockfile is
// looked up; empty means the tray's own config directory.
func New(lockfileDir string) *Notifier {
	return &Notifier{
		lockfileDir: lockfileDir,
		client:      &http.Client{Timeout: 5 * time.Second},
		retries:     constants.NotifyMaxRetries,
		retryDelay:  constants.NotifyRetryDelay,
	}
}

// Notify sends msg to the tray app, retrying transient delivery failures.
func (n *Notifier) Notify(ctx context.Context, msg Message) error {
	dir := n.lockfileDir
	if dir == "" {
		var err error
		if dir, err = GetTrayAppConfigDir(); err != nil {
			return err
		}
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       msg.Text(),
		DurationMs: constants.NotificationDurationMs,
		Alarm:      msg.Alarm,
	}

	for attempt := 1; ; attempt++ {
		err = n.send(ctx, port, secret, payload)
		if err == nil || attempt >= n.retries {
			return err
		}
		logger.For("notifier").Debug("Notification attempt failed", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.retryDelay):
		}
	}
}

// GetTrayAppConfigDir returns the directory holding the tray lockfile, honoring
// a lockfile_dir set in the tray's settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayConfigDir, nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return port, secret, nil
}

func (n *Notifier) send(ctx context.Context, port, secret string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://127.0.0.1:"+port, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Bump-Secret", secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}

// Writer prints notifications instead of delivering them. It backs --dry-run.
type Writer struct {
	Out io.Writer
}

func (w Writer) Notify(_ context.Context, msg Message) error {
	prefix := "[DryRun]"
	if msg.Alarm {
		prefix += " [alarm]"
	}
	_, err := fmt.Fprintln(w.Out, prefix, msg.Text())
	return err
}
