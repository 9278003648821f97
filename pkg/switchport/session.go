// Package switchport reads static MAC address table entries from an access
// switch over an SSH command session.
package switchport

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/newtron-network/reinv/pkg/util"
)

const (
	// DefaultSSHPort is the switch management SSH port.
	DefaultSSHPort = 22

	// DefaultDialTimeout bounds the TCP connect and SSH handshake.
	DefaultDialTimeout = 10 * time.Second
)

// Session runs CLI commands on a switch.
type Session interface {
	Run(ctx context.Context, cmd string) (string, error)
	Close() error
}

// SSHConfig holds the parameters for an SSH session to a switch.
type SSHConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// KnownHostsFile verifies the switch host key. When empty the host key
	// is not checked.
	KnownHostsFile string

	DialTimeout time.Duration
}

// SSHSession is a Session over one SSH connection. Each command runs in its
// own exec channel.
type SSHSession struct {
	host   string
	client *ssh.Client
}

// Dial connects and authenticates to the switch.
func Dial(ctx context.Context, cfg SSHConfig) (*SSHSession, error) {
	if cfg.Port == 0 {
		cfg.Port = DefaultSSHPort
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey() //nolint:gosec // opt-in verification below
	if cfg.KnownHostsFile != "" {
		cb, err := knownhosts.New(cfg.KnownHostsFile)
		if err != nil {
			return nil, util.NewSwitchSessionError(cfg.Host, "load known hosts", err)
		}
		hostKeyCallback = cb
	} else {
		util.WithSwitch(cfg.Host).Debug("host key verification disabled (no known_hosts file configured)")
	}

	password := cfg.Password
	clientConfig := &ssh.ClientConfig{
		User: cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			// IOS TACACS logins commonly negotiate keyboard-interactive.
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         cfg.DialTimeout,
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dialer := &net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, util.NewSwitchSessionError(cfg.Host, "dial", err)
	}

	// Bound the handshake; the deadline is cleared once the session is up.
	conn.SetDeadline(time.Now().Add(cfg.DialTimeout))
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		conn.Close()
		return nil, util.NewSwitchSessionError(cfg.Host, "ssh handshake", err)
	}
	conn.SetDeadline(time.Time{})

	util.WithSwitch(cfg.Host).Debugf("connected as %s", cfg.Username)
	return &SSHSession{
		host:   cfg.Host,
		client: ssh.NewClient(sshConn, chans, reqs),
	}, nil
}

// Run executes cmd and returns its combined output. If ctx is cancelled
// the channel is closed and ctx.Err() returned.
func (s *SSHSession) Run(ctx context.Context, cmd string) (string, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return "", util.NewSwitchSessionError(s.host, "open session", err)
	}
	defer session.Close()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := session.CombinedOutput(cmd)
		done <- result{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		session.Close()
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return string(r.out), util.NewSwitchSessionError(s.host, fmt.Sprintf("exec %q", cmd), r.err)
		}
		return string(r.out), nil
	}
}

// Close closes the SSH connection.
func (s *SSHSession) Close() error {
	return s.client.Close()
}
