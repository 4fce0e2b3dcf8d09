// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kelvinmwinuka/xsetdb/internal/constants"
)

type Config struct {
	TLS          bool       `json:"TLS" yaml:"TLS"`
	MTLS         bool       `json:"MTLS" yaml:"MTLS"`
	CertKeyPairs [][]string `json:"CertKeyPairs" yaml:"CertKeyPairs"`
	ClientCAs    []string   `json:"ClientCAs" yaml:"ClientCAs"`
	Port         uint16     `json:"Port" yaml:"Port"`
	ServerID     string     `json:"ServerId" yaml:"ServerId"`
	BindAddr     string     `json:"BindAddr" yaml:"BindAddr"`
	DataDir      string     `json:"DataDir" yaml:"DataDir"`
	RequirePass  bool       `json:"RequirePass" yaml:"RequirePass"`
	Password     string     `json:"Password" yaml:"Password"`

	// XSetFinity is the default capacity bound for newly created XSets.
	XSetFinity int64 `json:"XSetFinity" yaml:"XSetFinity"`
	// XSetPruning is the default pruning direction: "minscore" or "maxscore".
	XSetPruning string `json:"XSetPruning" yaml:"XSetPruning"`
	// XSetMaxZiplistEntries is the Packed-backing cardinality threshold.
	XSetMaxZiplistEntries int `json:"XSetMaxZiplistEntries" yaml:"XSetMaxZiplistEntries"`
	// XSetMaxZiplistValue is the Packed-backing per-member byte-length threshold.
	XSetMaxZiplistValue int `json:"XSetMaxZiplistValue" yaml:"XSetMaxZiplistValue"`
}

func GetConfig() (Config, error) {
	var certKeyPairs [][]string
	var clientCAs []string

	flag.Func("cert-key-pair",
		"A pair of file paths representing the signed certificate and it's corresponding key separated by a comma.",
		func(s string) error {
			pair := strings.Split(strings.TrimSpace(s), ",")
			for i := 0; i < len(pair); i++ {
				pair[i] = strings.TrimSpace(pair[i])
			}
			if len(pair) != 2 {
				return errors.New("certKeyPair must be 2 comma separated strings")
			}
			certKeyPairs = append(certKeyPairs, pair)
			return nil
		})

	flag.Func("client-ca", "Path to certificate authority used to verify client certificates.", func(s string) error {
		clientCAs = append(clientCAs, s)
		return nil
	})

	xsetPruning := constants.PruningMaxScore
	flag.Func("xset-pruning", "Default pruning direction for new XSets: 'minscore' or 'maxscore'.",
		func(option string) error {
			if !slices.ContainsFunc([]string{constants.PruningMinScore, constants.PruningMaxScore}, func(s string) bool {
				return strings.EqualFold(s, option)
			}) {
				return fmt.Errorf("xset-pruning must be '%s' or '%s'", constants.PruningMinScore, constants.PruningMaxScore)
			}
			xsetPruning = strings.ToLower(option)
			return nil
		})

	tls := flag.Bool("tls", false, "Start the server in TLS mode. Default is false.")
	mtls := flag.Bool("mtls", false, "Use mTLS to verify the client.")
	port := flag.Int("port", 7480, "Port to use. Default is 7480")
	serverId := flag.String("server-id", "1", "Server instance ID.")
	bindAddr := flag.String("bind-addr", "127.0.0.1", "Address to bind the server to.")
	dataDir := flag.String("data-dir", ".", "Directory used for ad-hoc file output.")
	requirePass := flag.Bool("require-pass", false, "Whether the server should require a password before allowing commands. Default is false.")
	password := flag.String("password", "", "The password for the default user.")
	xsetFinity := flag.Int64("xset-finity", DefaultXSetFinity, "Default capacity bound (finity) for newly created XSets. Must be > 0.")
	xsetMaxZiplistEntries := flag.Int("xset-max-ziplist-entries", 128, "Packed-backing cardinality threshold above which an XSet converts to the Indexed backing.")
	xsetMaxZiplistValue := flag.Int("xset-max-ziplist-value", 64, "Packed-backing per-member byte-length threshold above which an XSet converts to the Indexed backing.")

	config := flag.String(
		"config",
		"",
		`File path to a JSON or YAML config file. The values in this config file will override the flag values.`,
	)

	flag.Parse()

	conf := Config{
		CertKeyPairs:          certKeyPairs,
		ClientCAs:             clientCAs,
		TLS:                   *tls,
		MTLS:                  *mtls,
		Port:                  uint16(*port),
		ServerID:              *serverId,
		BindAddr:              *bindAddr,
		DataDir:               *dataDir,
		RequirePass:           *requirePass,
		Password:              *password,
		XSetFinity:            *xsetFinity,
		XSetPruning:           xsetPruning,
		XSetMaxZiplistEntries: *xsetMaxZiplistEntries,
		XSetMaxZiplistValue:   *xsetMaxZiplistValue,
	}

	if len(*config) > 0 {
		if f, err := os.Open(*config); err != nil {
			return Config{}, err
		} else {
			defer func() {
				if err = f.Close(); err != nil {
					log.Println(err)
				}
			}()

			ext := path.Ext(f.Name())

			if ext == ".json" {
				if err = json.NewDecoder(f).Decode(&conf); err != nil {
					return Config{}, err
				}
			}

			if ext == ".yaml" || ext == ".yml" {
				if err = yaml.NewDecoder(f).Decode(&conf); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if conf.XSetFinity <= 0 {
		return Config{}, errors.New("xset-finity must be a positive integer")
	}

	if conf.RequirePass && conf.Password == "" {
		return conf, errors.New("password cannot be empty if require-pass is set to true")
	}

	return conf, nil
}
