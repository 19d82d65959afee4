package webservice

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gridsafe/arcflash_core/internal/pkg/arcflash"
	"github.com/gridsafe/arcflash_core/internal/pkg/der"
	"github.com/gridsafe/arcflash_core/internal/pkg/model"
	"github.com/gridsafe/arcflash_core/internal/pkg/solver/mock"
	"gotest.tools/assert"
)

func newTestApp() *App {
	m := model.NewSystemModel()
	if err := m.AddBus(model.Bus{BusID: "BUS1", KV: 4.16}); err != nil {
		panic(err)
	}

	ns := &mock.Solver{
		BusData: []mock.BusRecord{{Name: "BUS1", KVBase: 4.16, IscKA: 10}},
	}

	return &App{
		Model:    m,
		Registry: der.NewRegistry(),
		Solver:   ns,
		Params: arcflash.FaultParams{
			GapMM:             32,
			Enclosure:         arcflash.VCB,
			WorkingDistanceMM: 457,
			ClearingTimeS:     0.08,
		},
	}
}

func TestBusIndexGet(t *testing.T) {
	app := newTestApp()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/bus", nil)
	app.Router().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")

	ids := []string{}
	err := json.Unmarshal(w.Body.Bytes(), &ids)
	assert.NilError(t, err)
	assert.DeepEqual(t, ids, []string{"BUS1"})
}

func TestArcFlashGet(t *testing.T) {
	app := newTestApp()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/bus/BUS1/arcflash", nil)
	app.Router().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")
	assert.Equal(t, "application/json; charset=UTF-8", w.HeaderMap.Get("Content-Type"), "got expected Content-Type in response")

	report := arcflash.Report{}
	err := json.Unmarshal(w.Body.Bytes(), &report)
	assert.NilError(t, err)
	assert.Equal(t, report.Bus, "BUS1")
	assert.Assert(t, report.IaKA > 0)
	assert.Assert(t, report.CategoryName != "")
}

func TestArcFlashGetUnknownBus(t *testing.T) {
	app := newTestApp()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/bus/GHOST/arcflash", nil)
	app.Router().ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code, "get returned 404")
}

func TestInsertAndExportDER(t *testing.T) {
	app := newTestApp()

	body := []byte(`{
		"der_type": "PV",
		"connection_bus": "BUS1",
		"mva_rating": 2.5,
		"kv_ll": 0.48,
		"pref_MW": 2.0
	}`)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "http://example.com/der/PV1", bytes.NewBuffer(body))
	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusCreated, w.Code, "post returned 201")

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "http://example.com/der/PV1/payload", nil)
	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")

	payload := der.Payload{}
	err := json.Unmarshal(w.Body.Bytes(), &payload)
	assert.NilError(t, err)
	assert.Equal(t, payload.DERID, "PV1")
	assert.Equal(t, payload.REGC.ImaxFault, 1.2)
}

func TestInsertDuplicateDER(t *testing.T) {
	app := newTestApp()

	body := `{"der_type": "PV", "connection_bus": "BUS1", "mva_rating": 1, "kv_ll": 0.48}`

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "http://example.com/der/PV1", bytes.NewBufferString(body))
	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusCreated, w.Code, "first post returned 201")

	w = httptest.NewRecorder()
	r = httptest.NewRequest("POST", "http://example.com/der/PV1", bytes.NewBufferString(body))
	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusConflict, w.Code, "second post returned 409")
}
