/*
webservice.go JSON API over the loaded model, the DER registry and the
calculation engine. The model and fault parameters are built before the
server starts and served read-only; DER inserts go through the registry's
own validation.
*/

package webservice

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"log"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/gridsafe/arcflash_core/internal/pkg/arcflash"
	"github.com/gridsafe/arcflash_core/internal/pkg/der"
	"github.com/gridsafe/arcflash_core/internal/pkg/model"
	"github.com/gridsafe/arcflash_core/internal/pkg/solver"
)

// App bundles the state the handlers serve.
type App struct {
	Model    *model.SystemModel
	Registry *der.Registry
	Solver   solver.NetworkSolver
	Params   arcflash.FaultParams
}

// Router wires the handler table.
func (app *App) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/bus", app.BusIndexHandler).Methods("GET")
	r.HandleFunc("/bus/{bus_id}/arcflash", app.ArcFlashHandler).Methods("GET")
	r.HandleFunc("/der", app.DERIndexHandler).Methods("GET")
	r.HandleFunc("/der/{der_id}", app.InsertDERHandler).Methods("POST")
	r.HandleFunc("/der/{der_id}/payload", app.PayloadHandler).Methods("GET")
	return r
}

// BusIndexHandler lists bus ids in the loaded model.
func (app *App) BusIndexHandler(w http.ResponseWriter, r *http.Request) {
	ids := make([]string, 0, len(app.Model.Buses))
	for id := range app.Model.Buses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	writeJSON(w, http.StatusOK, ids)
}

// ArcFlashHandler runs a study against the named bus with the app's
// fault parameters.
func (app *App) ArcFlashHandler(w http.ResponseWriter, r *http.Request) {
	busID := mux.Vars(r)["bus_id"]
	if _, ok := app.Model.Buses[busID]; !ok {
		writeError(w, http.StatusNotFound, &model.NotFoundError{Kind: "bus", ID: busID})
		return
	}

	report, err := arcflash.RunStudy(app.Solver, busID, app.Params)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DERIndexHandler lists registered der_ids.
func (app *App) DERIndexHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.Registry.IDs())
}

// InsertDERHandler inserts a DER from the request body.
func (app *App) InsertDERHandler(w http.ResponseWriter, r *http.Request) {
	derID := mux.Vars(r)["der_id"]
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	d, err := app.Registry.Insert(derID, body)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// PayloadHandler exports the simulation payload for a registered DER.
func (app *App) PayloadHandler(w http.ResponseWriter, r *http.Request) {
	derID := mux.Vars(r)["der_id"]
	payload, err := app.Registry.SimPayload(derID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var notFound *model.NotFoundError
	var duplicate *model.DuplicateIDError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &duplicate):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)

	body, err := json.Marshal(v)
	if err != nil {
		log.Println("[Webservice] malformed JSON:", err)
		return
	}
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
