// Package camhttp provides a generic HTTP interface to a scientific camera
package camhttp

import (
	"encoding/json"
	"net/http"
	"time"

	"goji.io"
	"goji.io/pat"

	"github.com/skywatch-obs/camkit/camera"
	"github.com/skywatch-obs/camkit/exposure"
	"github.com/skywatch-obs/camkit/fitsrec"
)

// FloatT is a JSON payload holding a single float
type FloatT struct {
	F64 float64 `json:"f64"`
}

// OptimizeT is the JSON reply to an optimize request
type OptimizeT struct {
	// ExposureS is the proposed exposure in seconds
	ExposureS float64 `json:"exposureS"`

	// Bin is the proposed binning factor
	Bin int `json:"bin"`
}

// Wrapper exposes a camera, an image recorder and the exposure optimizer
// over HTTP.
type Wrapper struct {
	// Cam is the camera being exposed
	Cam camera.Camera

	// Rec saves captured frames
	Rec *fitsrec.Recorder

	// Opt is the optimizer configuration used by /optimize
	Opt exposure.Settings
}

// NewWrapper returns an HTTP wrapper around a camera
func NewWrapper(cam camera.Camera, rec *fitsrec.Recorder, opt exposure.Settings) Wrapper {
	return Wrapper{Cam: cam, Rec: rec, Opt: opt}
}

// Bind adds this wrapper's routes to a goji mux
func (h Wrapper) Bind(mux *goji.Mux) {
	mux.HandleFunc(pat.Get("/exposure-time"), h.GetExposureTime)
	mux.HandleFunc(pat.Post("/exposure-time"), h.SetExposureTime)
	mux.HandleFunc(pat.Get("/temperature"), h.GetTemperature)
	mux.HandleFunc(pat.Post("/temperature-setpoint"), h.SetTemperatureSetpoint)
	mux.HandleFunc(pat.Post("/capture"), h.Capture)
	mux.HandleFunc(pat.Post("/optimize"), h.Optimize)
}

// GetExposureTime sends the current exposure time in seconds as JSON
func (h Wrapper) GetExposureTime(w http.ResponseWriter, r *http.Request) {
	f := FloatT{F64: h.Cam.GetExposure().Seconds()}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SetExposureTime sets the exposure time on a POST request.
// It can be provided either as a query parameter exposureTime, formatted in
// a way that is parseable by time.ParseDuration, or a JSON payload with key
// f64, holding the exposure time in seconds.
func (h Wrapper) SetExposureTime(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	texp := q.Get("exposureTime")
	var d time.Duration
	var err error
	if texp == "" {
		f := FloatT{}
		err = json.NewDecoder(r.Body).Decode(&f)
		d = time.Duration(f.F64 * 1e9) // s => ns
	} else {
		d, err = time.ParseDuration(texp)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err = h.Cam.SetExposure(d); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetTemperature sends the detector temperature in Celsius as JSON
func (h Wrapper) GetTemperature(w http.ResponseWriter, r *http.Request) {
	t, err := h.Cam.GetTemperature()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(FloatT{F64: float64(t)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SetTemperatureSetpoint sets the detector temperature setpoint from a JSON
// payload with key f64, in Celsius
func (h Wrapper) SetTemperatureSetpoint(w http.ResponseWriter, r *http.Request) {
	f := FloatT{}
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.Cam.SetTemperature(float32(f.F64)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Capture runs a blocking exposure and records the frame through the
// wrapper's recorder
func (h Wrapper) Capture(w http.ResponseWriter, r *http.Request) {
	im, err := h.Cam.CaptureImage()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := h.Rec.Save(im, im.Metadata()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Optimize runs a blocking exposure, computes the next (exposure, bin)
// pair, applies it to the camera and sends the pair back as JSON
func (h Wrapper) Optimize(w http.ResponseWriter, r *http.Request) {
	im, err := h.Cam.CaptureImage()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	exp, bin, err := camera.OptimizeExposure(h.Cam, im, h.Opt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(OptimizeT{ExposureS: exp.Seconds(), Bin: bin}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
