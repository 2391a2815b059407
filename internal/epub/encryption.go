package epub

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

const encryptionPath = "META-INF/encryption.xml"

// encryptionDocument represents the META-INF/encryption.xml structure.
// Only the compression properties are extracted: the declared pre-encryption
// OriginalLength per resource. Decryption itself is out of scope.
type encryptionDocument struct {
	XMLName       xml.Name `xml:"encryption"`
	EncryptedData []struct {
		CipherData struct {
			CipherReference struct {
				URI string `xml:"URI,attr"`
			} `xml:"CipherReference"`
		} `xml:"CipherData"`
		EncryptionProperties struct {
			Properties []struct {
				Compression struct {
					Method         string `xml:"Method,attr"`
					OriginalLength string `xml:"OriginalLength,attr"`
				} `xml:"Compression"`
			} `xml:"EncryptionProperty"`
		} `xml:"EncryptionProperties"`
	} `xml:"EncryptedData"`
}

// LoadEncryption reads and parses META-INF/encryption.xml, returning the
// declared original (pre-encryption) byte length per resource path. Returns
// an empty map when the publication has no encryption document.
func LoadEncryption(r *EPUBReader) (map[string]int64, error) {
	if !r.Has(encryptionPath) {
		return map[string]int64{}, nil
	}

	content, err := r.ReadFile(encryptionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read encryption.xml: %w", err)
	}
	return ParseEncryption(content)
}

// ParseEncryption parses encryption.xml content into the original-length map.
func ParseEncryption(content []byte) (map[string]int64, error) {
	var doc encryptionDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse encryption.xml: %w", err)
	}

	lengths := make(map[string]int64)

	for _, data := range doc.EncryptedData {
		uri := normalizePath(data.CipherData.CipherReference.URI)
		if uri == "" {
			continue
		}
		for _, prop := range data.EncryptionProperties.Properties {
			if prop.Compression.OriginalLength == "" {
				continue
			}
			n, err := strconv.ParseInt(prop.Compression.OriginalLength, 10, 64)
			if err != nil || n < 0 {
				continue
			}
			lengths[uri] = n
			break
		}
	}

	return lengths, nil
}
