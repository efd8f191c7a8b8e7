package common

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v, false)
}

// ParseJSONBytesStrict 解析 JSON 位元組切片到結構體（禁止未知欄位）
func ParseJSONBytesStrict(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v, true)
}

func decodeJSON(r io.Reader, v interface{}, disallowUnknown bool) error {
	dec := json.NewDecoder(r)
	if disallowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	if dec.More() {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

// MarshalJSON 將結構體轉換為 JSON 位元組
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
