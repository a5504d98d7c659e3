package hddtemp

import (
	"net"
	"sync/atomic"
	"testing"
	"time"
)

// fakeDaemon accepts connections on a loopback port and writes response to
// each, closing the connection afterwards like hddtemp does.
type fakeDaemon struct {
	ln    net.Listener
	conns atomic.Int64
}

func startFakeDaemon(t *testing.T, response string) *fakeDaemon {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	d := &fakeDaemon{ln: ln}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			d.conns.Add(1)
			go func(c net.Conn) {
				defer c.Close()
				_, _ = c.Write([]byte(response))
			}(conn)
		}
	}()
	t.Cleanup(func() { _ = ln.Close() })
	return d
}

// startSilentDaemon accepts connections and never writes or closes them
// until the test ends.
func startSilentDaemon(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan struct{})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				<-done
				_ = c.Close()
			}(conn)
		}
	}()
	t.Cleanup(func() {
		close(done)
		_ = ln.Close()
	})
	return ln.Addr().String()
}

func (d *fakeDaemon) addr() string {
	return d.ln.Addr().String()
}

// closedAddr returns a loopback address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

func newTestClient(t *testing.T, addr string) *Client {
	t.Helper()
	client, err := NewClient(Config{Address: addr, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

const sampleResponse = "|/dev/sda|ST1000DM003|34|C||/dev/sdb|WDC WD40EFRX|SLP|*||/dev/sdc|Generic|104|F|"
