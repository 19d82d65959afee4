package main

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gridsafe/arcflash_core/internal/pkg/arcflash"
	"github.com/gridsafe/arcflash_core/internal/pkg/der"
	"github.com/gridsafe/arcflash_core/internal/pkg/loader"
	"github.com/gridsafe/arcflash_core/internal/pkg/model"
	"github.com/gridsafe/arcflash_core/internal/pkg/mongodb"
	"github.com/gridsafe/arcflash_core/internal/pkg/relay"
	"github.com/gridsafe/arcflash_core/internal/pkg/solver"
	"github.com/gridsafe/arcflash_core/internal/pkg/solver/mock"
	"github.com/gridsafe/arcflash_core/internal/pkg/webservice"
)

var (
	modelPath   = flag.String("model", "./config/system_model.csv", "system model input file")
	modelFormat = flag.String("format", "csv", "model format: csv, json or dss")
	paramsPath  = flag.String("params", "./config/fault_params.json", "fault-study parameter file")
	ibfDefault  = flag.Float64("ibf", 10.0, "bolted fault current (kA) assumed by the built-in solver")
	relayConfig = flag.String("relay", "", "protective-relay config supplying clearing time (optional)")
	derFiles    = flag.String("der", "", "comma-separated DER config files (optional)")
	mongoConfig = flag.String("mongo", "", "mongodb recorder config (optional)")
	listenAddr  = flag.String("listen", "", "webservice listen address (optional)")
)

func main() {
	flag.Parse()
	log.Println("[Main] Starting arcflash_core v0.1.0")

	log.Println("[Main] Loading fault-study parameters")
	params, err := buildFaultParams(*paramsPath, *relayConfig)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Loading system model")
	ns := solver.NetworkSolver(&mock.Solver{})
	m, err := loader.Load(ns, *modelPath, *modelFormat)
	if err != nil {
		panic(err)
	}
	log.Printf("[Main] Model loaded: %d buses, %d lines, %d transformers\n",
		len(m.Buses), len(m.Lines), len(m.Transformers))

	// The built-in solver serves demo studies from the loaded model; a
	// production deployment binds a real short-circuit engine here.
	if strings.ToLower(*modelFormat) != "dss" {
		ns = seedSolver(m, *ibfDefault)
	}

	log.Println("[Main] Building DER registry")
	registry, err := buildRegistry(*derFiles)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Running studies")
	reports := runStudies(ns, m, params)

	if *mongoConfig != "" {
		log.Println("[Main] Recording study artifacts")
		record(*mongoConfig, reports, registry)
	}

	if *listenAddr != "" {
		log.Println("[Main] Serving webservice on", *listenAddr)
		app := webservice.App{Model: m, Registry: registry, Solver: ns, Params: params}
		log.Fatal(http.ListenAndServe(*listenAddr, app.Router()))
	}
}

// buildFaultParams reads the parameter file and, when a relay config is
// given, completes a missing clearing time from the protective relay
// before validating.
func buildFaultParams(path string, relayConfigPath string) (arcflash.FaultParams, error) {
	jsonConfig, err := ioutil.ReadFile(path)
	if err != nil {
		return arcflash.FaultParams{}, err
	}

	if relayConfigPath == "" {
		return arcflash.ReadFaultParams(jsonConfig)
	}

	p := arcflash.FaultParams{}
	if err := json.Unmarshal(jsonConfig, &p); err != nil {
		return arcflash.FaultParams{}, err
	}

	src, err := relay.New(relayConfigPath)
	if err != nil {
		return arcflash.FaultParams{}, err
	}
	p, err = src.Complete(p)
	if err != nil {
		return arcflash.FaultParams{}, err
	}

	if err := p.Validate(); err != nil {
		return arcflash.FaultParams{}, err
	}
	return p, nil
}

// seedSolver builds a solver over the loaded model's buses with a uniform
// assumed bolted fault current.
func seedSolver(m *model.SystemModel, ibfKA float64) solver.NetworkSolver {
	ns := &mock.Solver{}
	for _, b := range m.Buses {
		ns.BusData = append(ns.BusData, mock.BusRecord{Name: b.BusID, KVBase: b.KV, IscKA: ibfKA})
	}
	return ns
}

// buildRegistry inserts each DER config file under its base file name.
func buildRegistry(derFiles string) (*der.Registry, error) {
	registry := der.NewRegistry()
	if derFiles == "" {
		return registry, nil
	}

	for _, path := range strings.Split(derFiles, ",") {
		derID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		d, err := registry.InsertFile(derID, path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Main] Registered DER %s (%s @ %s)\n", d.DERID, d.Type, d.ConnectionBus)
	}
	return registry, nil
}

func runStudies(ns solver.NetworkSolver, m *model.SystemModel, params arcflash.FaultParams) []arcflash.Report {
	reports := make([]arcflash.Report, 0, len(m.Buses))
	for busID := range m.Buses {
		report, err := arcflash.RunStudy(ns, busID, params)
		if err != nil {
			log.Printf("[Main] Study failed for bus %s: %v\n", busID, err)
			continue
		}
		log.Printf("[Main] %s: V=%.3f kV Ibf=%.2f kA Ia=%.2f kA E=%.2f cal/cm2 -> %s\n",
			report.Bus, report.VKV, report.IbfKA, report.IaKA, report.EnergyCalCm2, report.CategoryName)
		reports = append(reports, report)
	}
	return reports
}

func record(configPath string, reports []arcflash.Report, registry *der.Registry) {
	recorder, err := mongodb.New(configPath)
	if err != nil {
		panic(err)
	}

	for _, report := range reports {
		if err := recorder.RecordReport(report); err != nil {
			log.Println("[Main] Report record failed:", err)
		}
	}

	for _, derID := range registry.IDs() {
		payload, err := registry.SimPayload(derID)
		if err != nil {
			log.Println("[Main] Payload export failed:", err)
			continue
		}
		if err := recorder.RecordPayload(payload); err != nil {
			log.Println("[Main] Payload record failed:", err)
		}
	}
}
