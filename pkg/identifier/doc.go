// Package identifier generates the visitor and session identifiers used by
// mbuzz.
//
// Random identifiers come from crypto/rand. Session identifiers can also be
// derived deterministically so that independent processes, or SDKs written in
// other languages, agree on the id of a session without coordinating:
//
//	RandomID()                                 // 64 hex chars, 256 bits of entropy
//	UUIDv4()                                   // RFC 4122 version 4
//	DeterministicSessionID(visitorID, ts)      // sha256(visitorID + "_" + ts/1800)
//	FingerprintSessionID(ip, ua, ts)           // sha256(fingerprint(ip, ua) + "_" + ts/1800)
//
// Timestamps are Unix seconds. Two timestamps in the same 30-minute bucket
// yield the same deterministic id; crossing a bucket boundary changes it.
package identifier
