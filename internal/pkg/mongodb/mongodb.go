/*
mongodb.go Archives arc-flash study reports and DER simulation payloads.
One client per call; documents are upserted by their natural key so
re-running a study against the same bus keeps the latest result.
*/

package mongodb

import (
	"context"
	"encoding/json"
	"io/ioutil"

	"github.com/gridsafe/arcflash_core/internal/pkg/arcflash"
	"github.com/gridsafe/arcflash_core/internal/pkg/der"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	reportCollection  = "arcFlashReports"
	payloadCollection = "derPayloads"
)

type config struct {
	URI      string `json:"URI"`
	Database string `json:"Database"`
	Port     string `json:"Port"`
}

// Recorder writes study artifacts to MongoDB.
type Recorder struct {
	config config
}

// New returns a Recorder configured from a JSON file.
func New(configPath string) (Recorder, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return Recorder{}, err
	}

	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Recorder{}, err
	}

	return Recorder{config: cfg}, nil
}

// RecordReport upserts a study report keyed by bus.
func (r Recorder) RecordReport(rep arcflash.Report) error {
	doc := bson.D{
		{Key: "$set", Value: bson.M{
			"pid":            rep.PID.String(),
			"bus":            rep.Bus,
			"v_kv":           rep.VKV,
			"i_bf_ka":        rep.IbfKA,
			"i_a_ka":         rep.IaKA,
			"energy_cal_cm2": rep.EnergyCalCm2,
			"category":       rep.CategoryName,
		}},
	}
	return r.upsert(reportCollection, bson.M{"bus": rep.Bus}, doc)
}

// RecordPayload upserts a DER simulation payload keyed by der_id.
func (r Recorder) RecordPayload(p der.Payload) error {
	doc := bson.D{
		{Key: "$set", Value: bson.M{
			"der_id":  p.DERID,
			"payload": p,
		}},
	}
	return r.upsert(payloadCollection, bson.M{"der_id": p.DERID}, doc)
}

func (r Recorder) upsert(collection string, filter bson.M, doc bson.D) error {
	client, err := mongo.NewClient(options.Client().ApplyURI(r.config.URI + ":" + r.config.Port))
	if err != nil {
		return err
	}

	ctx := context.TODO()
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	opts := options.Update().SetUpsert(true)
	_, err = client.Database(r.config.Database).Collection(collection).UpdateOne(ctx, filter, doc, opts)
	return err
}
