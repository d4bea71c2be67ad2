package player

import (
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/where"
)

const (
	socketWaitRetries = 60
	socketWaitDelay   = 50 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// Options configures how mpv engines are launched.
type Options struct {
	// Binary is the mpv executable, "mpv" when empty.
	Binary string
	Muted  bool
	Loop   bool
	// Headers are sent with every HTTP request mpv makes for the media.
	Headers map[string]string
}

// MPV implements Engine on top of a dedicated mpv process per slot.
type MPV struct {
	options    Options
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	mu         sync.Mutex // serializes socket round-trips

	observersMu  sync.Mutex
	observers    map[Observer]chan struct{}
	nextObserver Observer

	events    *EventListener
	closeOnce sync.Once
}

// NewMPV creates an engine that is not yet started.
func NewMPV(options Options) *MPV {
	if options.Binary == "" {
		options.Binary = "mpv"
	}

	return &MPV{
		options:   options,
		exited:    make(chan struct{}),
		observers: make(map[Observer]chan struct{}),
	}
}

// NewFactory returns a Factory that launches a paused mpv process per call.
func NewFactory(options Options) Factory {
	return func(rawURL, title string) (Engine, error) {
		m := NewMPV(options)
		if err := m.Open(rawURL, title); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// Open launches mpv paused on the given media and waits for its IPC socket.
func (m *MPV) Open(rawURL, title string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	m.socketPath = filepath.Join(where.Sockets(), uuid.NewString()+".sock")

	m.cmd = exec.Command(m.options.Binary, m.args(safeURL, sanitizeTitle(title))...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.With(log.Fields{"socket": m.socketPath, "title": title}).Debugf("mpv engine started")
	return nil
}

// args builds the mpv command line. The engine always starts paused so the
// coordinator alone decides when it plays.
func (m *MPV) args(target, title string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", title),
		fmt.Sprintf("--title=%s", title),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
	}

	if m.options.Muted {
		args = append(args, "--mute=yes")
	}

	if m.options.Loop {
		args = append(args, "--loop-file=inf")
	}

	if header := headerFields(m.options.Headers); header != "" {
		args = append(args, fmt.Sprintf("--http-header-fields=%s", header))
	}

	return append(args, target)
}

func headerFields(headers map[string]string) string {
	var b strings.Builder
	for k, v := range headers {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, ",", "%2C")))
	}
	return b.String()
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Play resumes playback.
func (m *MPV) Play() error {
	return m.set("pause", false)
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// Paused reports the engine's pause property.
func (m *MPV) Paused() (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "pause"})
	if err != nil {
		return false, err
	}
	paused, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property pause: expected bool, got %T", data)
	}
	return paused, nil
}

// Position returns the current playback position in seconds.
func (m *MPV) Position() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Duration returns the media duration in seconds. mpv reports the property
// as unavailable until mpv has finished opening the file.
func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

// Seek moves playback to an absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute+exact"})
	return err
}

// Attach moves and resizes the mpv window onto region. An empty region
// hides the video, which is how offscreen slots stay invisible.
func (m *MPV) Attach(region Geometry) error {
	if region.Empty() {
		return m.Detach()
	}
	if err := m.set("vid", "auto"); err != nil {
		return err
	}
	return m.set("geometry", fmt.Sprintf("%dx%d+%d+%d", region.Width, region.Height, region.X, region.Y))
}

// Detach disables video output so the window no longer covers the region.
func (m *MPV) Detach() error {
	return m.set("vid", "no")
}

// AddPeriodicObserver samples position and duration every interval while mpv is running.
func (m *MPV) AddPeriodicObserver(interval time.Duration, fn func(Progress)) Observer {
	if interval <= 0 {
		interval = time.Second
	}

	m.observersMu.Lock()
	m.nextObserver++
	id := m.nextObserver
	stop := make(chan struct{})
	m.observers[id] = stop
	m.observersMu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-m.exited:
				return
			case <-ticker.C:
				pos, err := m.Position()
				if err != nil {
					continue
				}

				dur, err := m.Duration()
				if err != nil {
					dur = math.NaN()
				}

				select {
				case <-stop:
					return
				default:
					fn(Progress{Position: pos, Duration: dur})
				}
			}
		}
	}()

	return id
}

// RemoveObserver stops a registration. Unknown ids are ignored.
func (m *MPV) RemoveObserver(o Observer) {
	m.observersMu.Lock()
	defer m.observersMu.Unlock()

	if stop, ok := m.observers[o]; ok {
		close(stop)
		delete(m.observers, o)
	}
}

// OnFailure reports playback errors (mpv end-file with reason "error").
func (m *MPV) OnFailure(fn func(error)) {
	if m.events != nil {
		return
	}

	m.events = NewEventListener(m.socketPath, func(name string, data interface{}) {
		if name != "end-file" {
			return
		}
		event, _ := data.(map[string]interface{})
		if reason, _ := event["reason"].(string); reason == "error" {
			fileErr, _ := event["file_error"].(string)
			fn(fmt.Errorf("mpv: %s", fileErr))
		}
	})

	if err := m.events.Start(); err != nil {
		log.Warnf("mpv failure listener: %v", err)
		m.events = nil
	}
}

// Close quits mpv, force-killing it if it does not exit in time, and removes the socket.
func (m *MPV) Close() error {
	m.closeOnce.Do(func() {
		m.observersMu.Lock()
		for id, stop := range m.observers {
			close(stop)
			delete(m.observers, id)
		}
		m.observersMu.Unlock()

		if m.events != nil {
			m.events.Stop()
		}

		if m.cmd == nil {
			return
		}

		_, _ = m.sendCommand([]interface{}{"quit"})

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}

		_ = os.Remove(m.socketPath)
	})

	return nil
}

func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget rejects anything mpv could read as a flag and any URL
// scheme other than http(s). Everything else is treated as a local path.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
