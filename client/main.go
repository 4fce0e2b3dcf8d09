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

package main

import (
	"bufio"
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strings"

	"github.com/tidwall/resp"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TLS  bool   `json:"tls" yaml:"tls"`
	Key  string `json:"key" yaml:"key"`
	Cert string `json:"cert" yaml:"cert"`
	Port uint16 `json:"port" yaml:"port"`
}

func main() {
	TLS := flag.Bool("tls", false, "Start the client in TLS mode. Default is false")
	Key := flag.String("key", "", "The private key file path.")
	Cert := flag.String("cert", "", "The signed certificate file path.")
	Port := flag.Int("port", 7480, "Port to use. Default is 7480")

	config := flag.String(
		"config",
		"",
		`File path to a JSON or YAML config file. The values in this config file will override the flag values.`,
	)

	flag.Parse()

	var conf Config

	if len(*config) > 0 {
		if f, err := os.Open(*config); err != nil {
			panic(err)
		} else {
			defer f.Close()

			ext := path.Ext(f.Name())

			if ext == ".json" {
				_ = json.NewDecoder(f).Decode(&conf)
			}

			if ext == ".yaml" || ext == ".yml" {
				_ = yaml.NewDecoder(f).Decode(&conf)
			}
		}
	} else {
		conf = Config{
			TLS:  *TLS,
			Key:  *Key,
			Cert: *Cert,
			Port: uint16(*Port),
		}
	}

	var conn net.Conn
	var err error

	if !conf.TLS {
		fmt.Println("Starting client in TCP mode...")

		conn, err = net.Dial("tcp", fmt.Sprintf("%s:%d", "localhost", conf.Port))
		if err != nil {
			panic(err)
		}
	} else {
		fmt.Println("Starting client in TLS mode...")

		f, err := os.Open(conf.Cert)
		if err != nil {
			panic(err)
		}

		cert, err := io.ReadAll(bufio.NewReader(f))
		if err != nil {
			panic(err)
		}

		rootCAs := x509.NewCertPool()
		if ok := rootCAs.AppendCertsFromPEM(cert); !ok {
			panic("Failed to parse certificate")
		}

		conn, err = tls.Dial("tcp", fmt.Sprintf("%s:%d", "localhost", conf.Port), &tls.Config{
			RootCAs: rootCAs,
		})
		if err != nil {
			panic(fmt.Sprintf("Handshake Error: %s", err.Error()))
		}
	}

	defer conn.Close()

	done := make(chan struct{})

	respConn := resp.NewConn(conn)
	stdioRW := bufio.NewReadWriter(bufio.NewReader(os.Stdin), bufio.NewWriter(os.Stdout))

	go func() {
		for {
			stdioRW.Write([]byte("\n> "))
			stdioRW.Flush()

			in, err := stdioRW.ReadBytes(byte('\n'))
			if err != nil {
				fmt.Println(err)
				break
			}

			in = bytes.TrimSpace(in)
			if len(in) == 0 {
				continue
			}

			if bytes.EqualFold(in, []byte("quit")) {
				break
			}

			tokens := strings.Fields(string(in))
			values := make([]resp.Value, len(tokens))
			for i, token := range tokens {
				values[i] = resp.StringValue(token)
			}

			if err := respConn.WriteArray(values); err != nil {
				fmt.Println(err)
				continue
			}

			reply, _, err := respConn.ReadValue()
			if err != nil && errors.Is(err, io.EOF) {
				fmt.Println(err)
				break
			} else if err != nil {
				fmt.Println(err)
				continue
			}

			printValue(reply)
		}
		done <- struct{}{}
	}()

	<-done
}

func printValue(v resp.Value) {
	if v.IsNull() {
		fmt.Println("(nil)")
		return
	}
	if v.Type().String() == "Array" {
		for i, item := range v.Array() {
			fmt.Printf("%d) %s\n", i+1, item.String())
		}
		return
	}
	fmt.Println(v.String())
}
