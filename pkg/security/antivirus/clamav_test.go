package antivirus_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"easein-studio-backend/pkg/security/antivirus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClamd answers PING with PONG and INSTREAM with reply(payload).
func fakeClamd(t *testing.T, reply func(payload []byte) string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveClamd(conn, reply)
		}
	}()
	return ln.Addr().String()
}

func serveClamd(conn net.Conn, reply func([]byte) string) {
	defer conn.Close()

	cmd := make([]byte, len("zPING\x00"))
	if _, err := io.ReadFull(conn, cmd); err != nil {
		return
	}
	if string(cmd) == "zPING\x00" {
		_, _ = conn.Write([]byte("PONG\x00"))
		return
	}

	// zINSTREAM\x00 is longer than zPING\x00
	rest := make([]byte, len("zINSTREAM\x00")-len(cmd))
	if _, err := io.ReadFull(conn, rest); err != nil {
		return
	}

	var payload bytes.Buffer
	for {
		var size uint32
		if err := binary.Read(conn, binary.BigEndian, &size); err != nil {
			return
		}
		if size == 0 {
			break
		}
		if _, err := io.CopyN(&payload, conn, int64(size)); err != nil {
			return
		}
	}
	_, _ = conn.Write([]byte(reply(payload.Bytes()) + "\x00"))
}

func eicarAware(payload []byte) string {
	if strings.Contains(string(payload), "EICAR") {
		return "stream: Eicar-Signature FOUND"
	}
	return "stream: OK"
}

func TestClamAVScanner(t *testing.T) {
	ctx := context.Background()

	t.Run("clean file", func(t *testing.T) {
		s := antivirus.NewClamAVScanner(fakeClamd(t, eicarAware), time.Second)

		res := s.Scan(ctx, "brief.pdf", strings.NewReader("%PDF-1.4 brief"))

		assert.False(t, res.Infected)
		assert.NoError(t, res.Error)
		assert.Equal(t, "clamav", res.ScannerName)
	})

	t.Run("infected file", func(t *testing.T) {
		s := antivirus.NewClamAVScanner(fakeClamd(t, eicarAware), time.Second)

		res := s.Scan(ctx, "eicar.txt", strings.NewReader("X5O!P%@AP EICAR-STANDARD-ANTIVIRUS-TEST-FILE"))

		assert.True(t, res.Infected)
		assert.Equal(t, "Eicar-Signature", res.ThreatName)
		assert.NoError(t, res.Error)
	})

	t.Run("scan error fails closed", func(t *testing.T) {
		s := antivirus.NewClamAVScanner(fakeClamd(t, func([]byte) string {
			return "INSTREAM size limit exceeded. ERROR"
		}), time.Second)

		res := s.Scan(ctx, "big.mov", strings.NewReader("data"))

		assert.True(t, res.Infected)
		assert.ErrorContains(t, res.Error, "scan error")
	})

	t.Run("unreachable daemon fails closed", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		s := antivirus.NewClamAVScanner(addr, time.Second)

		assert.False(t, s.Available(ctx))
		res := s.Scan(ctx, "brief.pdf", strings.NewReader("x"))
		assert.True(t, res.Infected)
		assert.Error(t, res.Error)
	})

	t.Run("ping", func(t *testing.T) {
		s := antivirus.NewClamAVScanner(fakeClamd(t, eicarAware), time.Second)
		assert.True(t, s.Available(ctx))
	})
}

func TestFromAddress(t *testing.T) {
	assert.Equal(t, "noop", antivirus.FromAddress("", time.Second).Name())
	assert.Equal(t, "clamav", antivirus.FromAddress("localhost:3310", time.Second).Name())

	res := antivirus.NewNoOpScanner().Scan(context.Background(), "a.txt", strings.NewReader("x"))
	assert.False(t, res.Infected)
}
