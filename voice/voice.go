package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"roamio/faults"
	"roamio/geo"
)

// Capture failure reasons. Each maps to its own user-facing message.
var (
	ErrPermissionDenied = errors.New("microphone permission denied")
	ErrNoDevice         = errors.New("no audio capture device")
	ErrBusy             = errors.New("recording already in progress")
)

// Recording auto-stops at this ceiling even without an explicit stop.
const MaxRecordingTime = 30 * time.Second

type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
)

// Recorder is the audio capture capability. Start may fail with
// ErrPermissionDenied or ErrNoDevice; Stop hands back whatever was
// captured.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() ([]byte, error)
}

// Result is what transcription+intent extraction returned.
type Result struct {
	Text      string `json:"text"`
	Intent    Intent `json:"-"`
	RawIntent string `json:"intent,omitempty"`
	Query     string `json:"query,omitempty"`
	Response  string `json:"response,omitempty"`
}

// Pipeline drives record → transcribe → dispatch. One instance per
// client session; states move idle → recording → processing → idle.
type Pipeline struct {
	client   *http.Client
	baseURL  string
	recorder Recorder
	resolver *geo.Resolver
	language string

	// onResult receives every completed result, including those produced
	// by the auto-stop timer when no caller is waiting.
	onResult func(context.Context, *Result)

	maxDuration time.Duration

	mu    sync.Mutex
	state State
	timer *time.Timer
}

func NewPipeline(baseURL string, rec Recorder, resolver *geo.Resolver, onResult func(context.Context, *Result)) *Pipeline {
	return &Pipeline{
		client:      &http.Client{Timeout: 25 * time.Second},
		baseURL:     baseURL,
		recorder:    rec,
		resolver:    resolver,
		language:    "en",
		onResult:    onResult,
		maxDuration: MaxRecordingTime,
		state:       StateIdle,
	}
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// StartRecording moves idle → recording. Failures come back as typed
// faults with a distinct message per reason, so the UI never shows one
// generic error for three different problems.
func (p *Pipeline) StartRecording(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return faults.Wrap(faults.UserInput, "already listening", ErrBusy)
	}
	p.state = StateRecording
	p.mu.Unlock()

	if err := p.recorder.Start(ctx); err != nil {
		p.mu.Lock()
		p.state = StateIdle
		p.mu.Unlock()
		return startFault(err)
	}

	p.mu.Lock()
	p.timer = time.AfterFunc(p.maxDuration, func() {
		if _, err := p.StopAndProcess(context.Background()); err != nil {
			log.Println("voice: auto-stop processing failed:", err)
		}
	})
	p.mu.Unlock()
	return nil
}

func startFault(err error) error {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return &faults.Fault{
			Kind: faults.Permission,
			Msg:  "Microphone access is blocked. Allow it in your browser settings and try again.",
			Err:  err,
		}
	case errors.Is(err, ErrNoDevice):
		return &faults.Fault{
			Kind: faults.Capability,
			Msg:  "No microphone was found on this device.",
			Err:  err,
		}
	default:
		return &faults.Fault{
			Kind: faults.Network,
			Msg:  "Could not start recording. Please try again.",
			Err:  err,
		}
	}
}

// CaptureFailure converts a capture failure reason reported by the
// client device into the matching typed fault, so the guidance message
// stays distinct per reason.
func CaptureFailure(reason string) error {
	switch reason {
	case "permission_denied":
		return startFault(ErrPermissionDenied)
	case "no_device":
		return startFault(ErrNoDevice)
	default:
		return startFault(errors.New(reason))
	}
}

// StopAndProcess ends the recording, packages the audio with a
// best-effort location, and sends it for transcription and intent
// extraction. A location failure is silently omitted, never fatal.
func (p *Pipeline) StopAndProcess(ctx context.Context) (*Result, error) {
	p.mu.Lock()
	if p.state != StateRecording {
		p.mu.Unlock()
		return nil, faults.Wrap(faults.UserInput, "not recording", ErrBusy)
	}
	p.state = StateProcessing
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.state = StateIdle
		p.mu.Unlock()
	}()

	audio, err := p.recorder.Stop()
	if err != nil {
		return nil, faults.Wrap(faults.Capability, "recording produced no audio", err)
	}

	res, err := p.transcribe(ctx, audio)
	if err != nil {
		return nil, err
	}
	if p.onResult != nil {
		p.onResult(ctx, res)
	}
	return res, nil
}

func (p *Pipeline) transcribe(ctx context.Context, audio []byte) (*Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("audio", "capture.webm")
	if err != nil {
		return nil, faults.Wrap(faults.Network, "packaging audio", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, faults.Wrap(faults.Network, "packaging audio", err)
	}
	mw.WriteField("language", p.language)

	// best-effort location: a fallback fix is omitted rather than sent
	if p.resolver != nil {
		if loc := p.resolver.Resolve(ctx, 2*time.Second, geo.DefaultMaxAge); !loc.Fallback {
			locJSON, _ := json.Marshal(map[string]float64{"lat": loc.Lat, "lng": loc.Lng})
			mw.WriteField("location", string(locJSON))
		}
	}
	mw.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/whisper-intent", &buf)
	if err != nil {
		return nil, faults.Wrap(faults.Network, "transcription request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, faults.Wrap(faults.Network, "transcription service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, faults.New(faults.Network, fmt.Sprintf("transcription returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.Wrap(faults.Network, "reading transcription", err)
	}
	return decodeResult(body)
}

// decodeResult tolerates both intent shapes the service has used: a bare
// string and an object {name, query}.
func decodeResult(body []byte) (*Result, error) {
	var payload struct {
		OK       bool            `json:"ok"`
		Text     string          `json:"text"`
		Intent   json.RawMessage `json:"intent"`
		Response string          `json:"response"`
		Error    string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, faults.Wrap(faults.Network, "transcription decode failed", err)
	}
	if !payload.OK {
		return nil, faults.New(faults.Network, "transcription failed: "+payload.Error)
	}

	res := &Result{Text: payload.Text, Response: payload.Response}
	if len(payload.Intent) > 0 && string(payload.Intent) != "null" {
		var name string
		if json.Unmarshal(payload.Intent, &name) == nil {
			res.RawIntent = name
		} else {
			var obj struct {
				Name  string `json:"name"`
				Query string `json:"query"`
			}
			if json.Unmarshal(payload.Intent, &obj) == nil {
				res.RawIntent = obj.Name
				res.Query = obj.Query
			}
		}
	}
	res.Intent = ParseIntent(res.RawIntent)
	if res.Intent == IntentSearch && res.Query == "" {
		res.Query = res.Text
	}
	return res, nil
}
