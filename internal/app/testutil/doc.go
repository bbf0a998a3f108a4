// Package testutil provides shared helpers for tests across the flash-asr packages.
//
// It contains three groups of helpers:
//
// 1. Fake Flash endpoint (flash_server.go):
//   - NewFlashServer: an httptest server speaking the header status protocol
//   - FlashServer.Requests: every request the server saw, decoded
//
// 2. Fake ffmpeg (ffmpeg.go):
//   - InstallFakeFFmpeg: puts a shell script named ffmpeg first on PATH
//   - Behaviour is selected per test through FFmpegMode
//
// 3. Fixtures and logging (fixtures.go, logger.go):
//   - Sample response bodies and file helpers
//   - NewObservedLogger for asserting on zap output
//
// # Usage
//
//	func TestSilent(t *testing.T) {
//	    srv := testutil.NewFlashServer(t, testutil.FlashReply{
//	        Code: "20000003", Message: "silent", Body: "{}",
//	    })
//	    client := volcengine.NewClient(volcengine.ClientConfig{Endpoint: srv.URL}, nil)
//	    // ...
//	}
package testutil
