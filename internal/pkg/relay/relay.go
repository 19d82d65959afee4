/*
relay.go Reads fault-clearing parameters from a protective relay over
Modbus/TCP. Register map and endpoint come from a JSON config. Used to
complete a partial FaultParams with the relay's measured clearing time
before a study runs.
*/

package relay

import (
	"encoding/binary"
	"encoding/json"
	"io/ioutil"
	"math"
	"time"

	"github.com/goburrow/modbus"
	"github.com/gridsafe/arcflash_core/internal/pkg/arcflash"
	"github.com/gridsafe/arcflash_core/internal/pkg/model"
)

// Register describes one float32 holding register on the relay.
type Register struct {
	Name    string `json:"Name"`
	Address uint16 `json:"Address"`
}

// Config is the relay endpoint and register map.
type Config struct {
	IPAddr    string     `json:"IPAddr"`
	Port      string     `json:"Port"`
	TimeoutMS int        `json:"TimeoutMS"`
	Registers []Register `json:"Registers"`
}

// Source polls the relay on demand; one connection per read.
type Source struct {
	handler   *modbus.TCPClientHandler
	registers []Register
}

// New returns a configured Source.
func New(configPath string) (*Source, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return nil, err
	}

	handler := modbus.NewTCPClientHandler(cfg.IPAddr + ":" + cfg.Port)
	handler.Timeout = time.Millisecond * time.Duration(cfg.TimeoutMS)

	return &Source{handler: handler, registers: cfg.Registers}, nil
}

// ClearingTime reads the relay's fault-clearing time register, in seconds.
func (s *Source) ClearingTime() (float64, error) {
	return s.readRegister("ClearingTime")
}

// Complete fills the clearing time of a partial FaultParams from the
// relay. Parameters already set are left alone.
func (s *Source) Complete(p arcflash.FaultParams) (arcflash.FaultParams, error) {
	if p.ClearingTimeS > 0 {
		return p, nil
	}
	t, err := s.readRegister("ClearingTime")
	if err != nil {
		return p, err
	}
	p.ClearingTimeS = t
	return p, nil
}

func (s *Source) readRegister(name string) (float64, error) {
	reg, err := s.findRegister(name)
	if err != nil {
		return 0, err
	}

	if err := s.handler.Connect(); err != nil {
		return 0, err
	}
	defer s.handler.Close()

	client := modbus.NewClient(s.handler)
	resp, err := client.ReadHoldingRegisters(reg.Address, 2)
	if err != nil {
		return 0, err
	}
	return decodeF32(resp), nil
}

func (s *Source) findRegister(name string) (Register, error) {
	for _, reg := range s.registers {
		if reg.Name == name {
			return reg, nil
		}
	}
	return Register{}, &model.NotFoundError{Kind: "relay register", ID: name}
}

// decodeF32 converts two big-endian holding registers into a float64.
func decodeF32(bytes []byte) float64 {
	bits := binary.BigEndian.Uint32(bytes)
	return float64(math.Float32frombits(bits))
}
