package testutil

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

func FromHex(s string) []byte {
	bz, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		panic(err)
	}
	return bz
}

func JsonPrint(a any) {
	bz, _ := json.MarshalIndent(a, "", "  ")
	fmt.Println(string(bz))
}

func Ref[T any](s T) *T {
	return &s
}
