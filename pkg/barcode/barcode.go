// Package barcode renders device id labels as Code128 barcodes.
package barcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

const (
	labelWidth  = 300
	labelHeight = 80
)

// GenerateBase64 encodes the device id as a Code128 barcode and returns it
// as a PNG data URL usable directly in an <img> tag.
func GenerateBase64(deviceID string) (string, error) {
	code, err := code128.Encode(deviceID)
	if err != nil {
		return "", fmt.Errorf("failed to encode barcode for %q: %v", deviceID, err)
	}

	scaled, err := barcode.Scale(code, labelWidth, labelHeight)
	if err != nil {
		return "", fmt.Errorf("failed to scale barcode for %q: %v", deviceID, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("failed to render barcode PNG for %q: %v", deviceID, err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
