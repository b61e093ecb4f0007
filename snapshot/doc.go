// Package snapshot serializes a trained model into a self-describing,
// checksummed binary frame.
//
// Frame layout (little-endian):
//
//	magic        [4]byte  "CKS1"
//	version      uint16
//	compression  uint8    (0=none, 1=lz4, 2=zstd)
//	codec length uint8
//	codec name   [n]byte  ("json", "go-json")
//	raw length   uint32   payload length before compression
//	checksum     uint32   CRC32C of the uncompressed payload
//	payload      []byte
//
// The codec and compression are read back from the header, so a snapshot
// written with any built-in combination decodes without extra options.
package snapshot
