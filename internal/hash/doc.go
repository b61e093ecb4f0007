// Package hash provides the CRC32-Castagnoli checksum used by snapshot
// frames and S3 uploads.
//
//	sum := hash.CRC32C(payload)
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	sum = h.Sum32()
//
// Go's hash/crc32 uses SSE4.2 or the ARM CRC extension when available.
package hash
