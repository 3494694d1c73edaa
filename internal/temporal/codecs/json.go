// Package codecs is a placeholder for payload codecs.
//
// A later phase needs:
//   - Encryption codec for personal data in facts (names, addresses, arrears)
//   - Compression codec for large payloads (rendered document bodies)
//   - codec.PayloadCodec implementation registered on client.Options.DataConverter
package codecs
