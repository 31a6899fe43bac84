package client

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/damianoneill/ncclient/netconf/common/codec"
	"github.com/damianoneill/ncclient/netconf/testserver"
	"github.com/pkg/errors"
	assert "github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func testSSHConfig(password string) *ssh.ClientConfig {
	return &ssh.ClientConfig{
		User:            testserver.TestUserName,
		Auth:            []ssh.AuthMethod{ssh.Password(password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint: gosec
	}
}

func newTransport(ctx context.Context, port int, sshcfg *ssh.ClientConfig) (Transport, error) {
	target := fmt.Sprintf("localhost:%d", port)
	return NewSSHTransport(ctx, NewDialer(target, sshcfg), target, nil)
}

func TestSuccessfulConnection(t *testing.T) {
	ts := testserver.NewTestNetconfServer(t)
	defer ts.Close()

	tr, err := newTransport(context.Background(), ts.Port(), testSSHConfig(testserver.TestPassword))
	assert.NoError(t, err, "Not expecting new transport to fail")
	assert.NoError(t, tr.Close())
}

func TestFailingConnection(t *testing.T) {
	ts := testserver.NewTestNetconfServer(t)
	defer ts.Close()

	tr, err := newTransport(context.Background(), ts.Port(), testSSHConfig("wrongPassword"))
	assert.Error(t, err, "Not expecting new transport to succeed")
	assert.Nil(t, tr, "Transport should not be defined")
}

func TestDialCancelled(t *testing.T) {
	ts := testserver.NewTestNetconfServer(t)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTransport(ctx, ts.Port(), testSSHConfig(testserver.TestPassword))
	assert.Error(t, err)
}

// silentListener accepts tcp connections and never writes to them.
func silentListener(t *testing.T) string {
	l, err := net.Listen("tcp", "localhost:0")
	assert.NoError(t, err)

	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			c, err := l.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = l.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	return l.Addr().String()
}

func TestDialAbandonsSilentPeer(t *testing.T) {
	target := silentListener(t)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	begin := time.Now()
	tr, err := NewSSHTransport(ctx, NewDialer(target, testSSHConfig(testserver.TestPassword)), target, nil)
	assert.Error(t, err)
	assert.Nil(t, tr)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "unexpected error %v", err)
	assert.True(t, time.Since(begin) < 3*time.Second, "dial outlived its context")
}

func TestConnectHonoursSetupTimeout(t *testing.T) {
	target := silentListener(t)

	s := NewSession(context.Background(), target, testSSHConfig(testserver.TestPassword), nil,
		&Config{SetupTimeoutSecs: 1})

	res := make(chan error, 1)
	go func() { res <- s.Connect(context.Background()) }()

	select {
	case err := <-res:
		assert.True(t, errors.Is(err, context.DeadlineExceeded), "unexpected error %v", err)
		assert.Equal(t, Unconnected, s.State())
	case <-time.After(4 * time.Second):
		assert.Fail(t, "Connect still blocked after the setup timeout")
	}
}

func TestWriteRead(t *testing.T) {
	ts := testserver.NewTestNetconfServer(t)
	defer ts.Close()

	tr, err := newTransport(context.Background(), ts.Port(), testSSHConfig(testserver.TestPassword))
	assert.NoError(t, err, "Not expecting new transport to fail")
	defer tr.Close()

	dec := codec.NewDecoder(tr)
	hello := &common.HelloMessage{}
	_, err = dec.DecodeValue(hello)
	assert.NoError(t, err)
	assert.Equal(t, "1", hello.SessionID)
	assert.Contains(t, hello.Capabilities, common.CapBase11)
}

func TestTrace(t *testing.T) {
	ts := testserver.NewTestNetconfServer(t)
	defer ts.Close()

	var mu sync.Mutex
	var traces []string
	record := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		traces = append(traces, s)
	}

	trace := &ClientTrace{
		DialStart: func(clientConfig *ssh.ClientConfig, target string) {
			record(fmt.Sprintf("DialStart %s", target))
		},
		DialDone: func(clientConfig *ssh.ClientConfig, target string, err error, d time.Duration) {
			record(fmt.Sprintf("DialDone %s error:%v", target, err))
		},
		ConnectionClosed: func(target string, err error) {
			record(fmt.Sprintf("ConnectionClosed %s error:%v", target, err))
		},
		ReadDone: func(p []byte, c int, err error, d time.Duration) {
			record("ReadDone")
		},
		WriteStart: func(p []byte) {
			record(fmt.Sprintf("WriteStart %s", p))
		},
	}

	target := fmt.Sprintf("localhost:%d", ts.Port())
	ctx := WithClientTrace(context.Background(), trace)
	tr, err := newTransport(ctx, ts.Port(), testSSHConfig(testserver.TestPassword))
	assert.NoError(t, err)

	_, err = codec.NewDecoder(tr).Decode()
	assert.NoError(t, err)
	assert.NoError(t, codec.NewEncoder(tr).Encode(`<hello/>`))
	assert.NoError(t, tr.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "DialStart "+target, traces[0])
	assert.Equal(t, "DialDone "+target+" error:<nil>", traces[1])
	assert.Contains(t, traces, "ReadDone")
	assert.Contains(t, traces, "WriteStart <hello/>")
	assert.Equal(t, "ConnectionClosed "+target+" error:<nil>", traces[len(traces)-1])
}
