package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishery/internal/listener"
	"github.com/pixil98/go-service/service"
	"golang.org/x/crypto/ssh"
)

type ListenerType int

const (
	ListenerTypeTelnet ListenerType = iota
	ListenerTypeSSH
	ListenerTypeWebSocket
)

func (lt *ListenerType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "telnet":
		*lt = ListenerTypeTelnet
	case "ssh":
		*lt = ListenerTypeSSH
	case "websocket":
		*lt = ListenerTypeWebSocket
	default:
		return fmt.Errorf("unknown listener type: %s", text)
	}
	return nil
}

type ListenerConfig struct {
	Protocol    ListenerType `json:"protocol"`
	Host        string       `json:"host,omitempty"`
	Port        uint16       `json:"port"`
	HostKeyPath string       `json:"host_key_path,omitempty"`
	// Path is the websocket endpoint, /ws when unset.
	Path string `json:"path,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.HostKeyPath != "" && cl.Protocol != ListenerTypeSSH {
		el.Add(fmt.Errorf("host_key_path only applies to ssh listeners"))
	}
	if cl.Path != "" {
		if cl.Protocol != ListenerTypeWebSocket {
			el.Add(fmt.Errorf("path only applies to websocket listeners"))
		} else if !strings.HasPrefix(cl.Path, "/") {
			el.Add(fmt.Errorf("path must start with /"))
		}
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTelnet:
		return listener.NewTelnetListener(cl.Host, cl.Port, cm), nil
	case ListenerTypeSSH:
		hostKey, err := cl.hostKey()
		if err != nil {
			return nil, fmt.Errorf("setting up ssh host key: %w", err)
		}
		return listener.NewSshListener(cl.Host, cl.Port, cm, hostKey), nil
	case ListenerTypeWebSocket:
		return listener.NewWebSocketListener(cl.Host, cl.Port, cl.Path, cm), nil
	default:
		return nil, fmt.Errorf("unknown listener type: %v", cl.Protocol)
	}
}

// hostKey reads the ssh host key from HostKeyPath. A missing file is
// filled with a fresh ed25519 key so the server keeps its identity across
// restarts. With no path configured the key lives only as long as the process.
func (cl *ListenerConfig) hostKey() (ssh.Signer, error) {
	if cl.HostKeyPath == "" {
		slog.Warn("ssh listener has no host_key_path, clients will see a new key on every restart")
		return newHostKey(nil)
	}

	pemBytes, err := os.ReadFile(cl.HostKeyPath)
	if os.IsNotExist(err) {
		slog.Info("generating ssh host key", "path", cl.HostKeyPath)
		return newHostKey(func(block *pem.Block) error {
			if err := os.MkdirAll(filepath.Dir(cl.HostKeyPath), 0o755); err != nil {
				return err
			}
			return os.WriteFile(cl.HostKeyPath, pem.EncodeToMemory(block), 0o600)
		})
	}
	if err != nil {
		return nil, fmt.Errorf("reading host key %q: %w", cl.HostKeyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %q: %w", cl.HostKeyPath, err)
	}
	return signer, nil
}

func newHostKey(persist func(*pem.Block) error) (ssh.Signer, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating host key: %w", err)
	}
	if persist != nil {
		block, err := ssh.MarshalPrivateKey(key, "fishery host key")
		if err != nil {
			return nil, fmt.Errorf("encoding host key: %w", err)
		}
		if err := persist(block); err != nil {
			return nil, fmt.Errorf("writing host key: %w", err)
		}
	}
	return ssh.NewSignerFromKey(key)
}
