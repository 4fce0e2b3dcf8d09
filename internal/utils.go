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

package internal

import (
	"bufio"
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"math/big"
	"net"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/kelvinmwinuka/xsetdb/internal/constants"
	"github.com/tidwall/resp"
)

func AdaptType(s string) interface{} {
	// Adapt the type of the parameter to string, float64 or int
	n, _, err := big.ParseFloat(s, 10, 256, big.RoundingMode(big.Exact))

	if err != nil {
		return s
	}

	if n.IsInt() {
		i, _ := n.Int64()
		return int(i)
	}

	f, _ := n.Float64()

	return f
}

func Decode(raw []byte) ([]string, error) {
	reader := resp.NewReader(bytes.NewReader(raw))

	value, _, err := reader.ReadValue()
	if err != nil {
		return nil, err
	}

	var res []string
	for i := 0; i < len(value.Array()); i++ {
		res = append(res, value.Array()[i].String())
	}

	return res, nil
}

func ReadMessage(r io.Reader) ([]byte, error) {
	reader := bufio.NewReader(r)

	var res []byte

	chunk := make([]byte, 8192)

	for {
		n, err := reader.Read(chunk)
		if err != nil && errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		res = append(res, chunk...)
		if n < len(chunk) {
			break
		}
		clear(chunk)
	}

	return bytes.Trim(res, "\x00"), nil
}

func GetIPAddress() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer func() {
		if err = conn.Close(); err != nil {
			log.Println(err)
		}
	}()

	localAddr := strings.Split(conn.LocalAddr().String(), ":")[0]

	return localAddr, nil
}

func GetSubCommand(command Command, cmd []string) (interface{}, error) {
	if command.SubCommands == nil || len(command.SubCommands) == 0 {
		// If the command has no sub-commands, return nil
		return nil, nil
	}
	if len(cmd) < 2 {
		// If the cmd provided by the user has less than 2 tokens, there's no need to search for a subcommand
		return nil, nil
	}
	for _, subCommand := range command.SubCommands {
		if strings.EqualFold(subCommand.Command, cmd[1]) {
			return subCommand, nil
		}
	}
	return nil, fmt.Errorf("command %s %s not supported", cmd[0], cmd[1])
}

func IsWriteCommand(command Command, subCommand SubCommand) bool {
	return slices.Contains(append(command.Categories, subCommand.Categories...), constants.WriteCategory)
}

func AbsInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// CompareLex returns -1 if s1 < s2, 0 if equal and 1 if s1 > s2, comparing
// byte-by-byte (the shorter, equal-prefix string sorts first).
func CompareLex(s1 string, s2 string) int {
	limit := len(s1)
	if len(s2) < limit {
		limit = len(s2)
	}
	for i := 0; i < limit; i++ {
		if s1[i] != s2[i] {
			if s1[i] < s2[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(s1) < len(s2):
		return -1
	case len(s1) > len(s2):
		return 1
	default:
		return 0
	}
}

func EncodeCommand(cmd []string) []byte {
	res := fmt.Sprintf("*%d\r\n", len(cmd))
	for _, token := range cmd {
		res += fmt.Sprintf("$%d\r\n%s\r\n", len(token), token)
	}
	return []byte(res)
}

func ParseNilResponse(b []byte) (bool, error) {
	r := resp.NewReader(bytes.NewReader(b))
	v, _, err := r.ReadValue()
	if err != nil {
		return false, err
	}
	return v.IsNull(), nil
}

func ParseStringResponse(b []byte) (string, error) {
	r := resp.NewReader(bytes.NewReader(b))
	v, _, err := r.ReadValue()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func ParseIntegerResponse(b []byte) (int, error) {
	r := resp.NewReader(bytes.NewReader(b))
	v, _, err := r.ReadValue()
	if err != nil {
		return 0, err
	}
	return v.Integer(), nil
}

func ParseFloatResponse(b []byte) (float64, error) {
	r := resp.NewReader(bytes.NewReader(b))
	v, _, err := r.ReadValue()
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

func ParseBooleanResponse(b []byte) (bool, error) {
	r := resp.NewReader(bytes.NewReader(b))
	v, _, err := r.ReadValue()
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

func ParseStringArrayResponse(b []byte) ([]string, error) {
	r := resp.NewReader(bytes.NewReader(b))
	v, _, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return []string{}, nil
	}
	arr := make([]string, len(v.Array()))
	for i, e := range v.Array() {
		if e.IsNull() {
			arr[i] = ""
			continue
		}
		arr[i] = e.String()
	}
	return arr, nil
}

func ParseIntegerArrayResponse(b []byte) ([]int, error) {
	r := resp.NewReader(bytes.NewReader(b))
	v, _, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return []int{}, nil
	}
	arr := make([]int, len(v.Array()))
	for i, e := range v.Array() {
		if e.IsNull() {
			arr[i] = 0
			continue
		}
		arr[i] = e.Integer()
	}
	return arr, nil
}

func CompareNestedStringArrays(got [][]string, want [][]string) bool {
	for _, wantItem := range want {
		if !slices.ContainsFunc(got, func(gotItem []string) bool {
			return reflect.DeepEqual(wantItem, gotItem)
		}) {
			return false
		}
	}
	for _, gotItem := range got {
		if !slices.ContainsFunc(want, func(wantItem []string) bool {
			return reflect.DeepEqual(wantItem, gotItem)
		}) {
			return false
		}
	}
	return true
}

func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = l.Close()
	}()

	return l.Addr().(*net.TCPAddr).Port, nil
}

func GetConnection(addr string, port int) (net.Conn, error) {
	var conn net.Conn
	var err error
	done := make(chan struct{})

	go func() {
		for {
			conn, err = net.Dial("tcp", fmt.Sprintf("%s:%d", addr, port))
			if err != nil {
				if opErr, ok := err.(*net.OpError); ok && errors.Is(opErr, syscall.ECONNREFUSED) {
					// If we get a "connection refused" error, try again.
					continue
				}
			}
			break
		}
		done <- struct{}{}
	}()

	ticker := time.NewTicker(10 * time.Second)
	defer func() {
		ticker.Stop()
	}()

	select {
	case <-ticker.C:
		return nil, errors.New("connection timeout")
	case <-done:
		return conn, err
	}
}

func GetTLSConnection(addr string, port int, config *tls.Config) (net.Conn, error) {
	var conn net.Conn
	var err error
	done := make(chan struct{})

	go func() {
		for {
			conn, err = tls.Dial("tcp", fmt.Sprintf("%s:%d", addr, port), config)
			if err != nil {
				if opErr, ok := err.(*net.OpError); ok && errors.Is(opErr, syscall.ECONNREFUSED) {
					continue
				}
			}
			break
		}
		done <- struct{}{}
	}()

	ticker := time.NewTicker(10 * time.Second)
	defer func() {
		ticker.Stop()
	}()

	select {
	case <-ticker.C:
		return nil, errors.New("connection timeout")
	case <-done:
		return conn, err
	}
}
