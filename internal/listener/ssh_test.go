package listener

import (
	"bufio"
	"crypto/ed25519"
	"crypto/rand"
	"net"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"golang.org/x/crypto/ssh"
)

func testHostKey(t *testing.T) ssh.Signer {
	t.Helper()
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(key)
	if err != nil {
		t.Fatalf("creating signer: %v", err)
	}
	return signer
}

func TestAwaitShell(t *testing.T) {
	tests := map[string]struct {
		types    []string
		expReady bool
	}{
		"shell after pty":   {types: []string{"pty-req", "env", "shell"}, expReady: true},
		"shell twice":       {types: []string{"shell", "shell"}, expReady: true},
		"exec is not shell": {types: []string{"exec"}, expReady: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			requests := make(chan *ssh.Request, len(tt.types))
			for _, typ := range tt.types {
				requests <- &ssh.Request{Type: typ}
			}
			close(requests)

			ready := awaitShell(requests)

			select {
			case <-ready:
				testutil.AssertEqual(t, "ready", true, tt.expReady)
			case <-time.After(100 * time.Millisecond):
				testutil.AssertEqual(t, "ready", false, tt.expReady)
			}
		})
	}
}

func TestSshListener_Session(t *testing.T) {
	l := NewSshListener("127.0.0.1", 4022, NewConnectionManager(&echoRunner{lines: 1}), testHostKey(t))
	serverSide, clientSide := net.Pipe()

	go l.serveConn(t.Context(), serverSide)

	conn, chans, reqs, err := ssh.NewClientConn(clientSide, "pipe", &ssh.ClientConfig{
		User:            "ana",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	})
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	client := ssh.NewClient(conn, chans, reqs)
	defer client.Close()

	sess, err := client.NewSession()
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	stdin, err := sess.StdinPipe()
	if err != nil {
		t.Fatalf("stdin: %v", err)
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		t.Fatalf("stdout: %v", err)
	}
	if err := sess.Shell(); err != nil {
		t.Fatalf("shell: %v", err)
	}

	if _, err := stdin.Write([]byte("cast\r")); err != nil {
		t.Fatalf("write: %v", err)
	}
	line, err := bufio.NewReader(stdout).ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	testutil.AssertEqual(t, "reply", line, "you said: cast\r\n")
}
