package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SshListener serves the console over ssh. Any user name is accepted
// without a password; the name identifies the operator in the who list.
type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
}

func (l *SshListener) serverConfig() *ssh.ServerConfig {
	config := &ssh.ServerConfig{
		NoClientAuth: true,
	}
	config.AddHostKey(l.hostKey)
	return config
}

func (l *SshListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	// Sessions outlive ctx until the accept loop below has stopped.
	connCtx, cancelConns := context.WithCancel(context.WithoutCancel(ctx))
	var wg sync.WaitGroup
	defer func() {
		cancelConns()
		wg.Wait()
	}()

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	config := l.serverConfig()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.serveConn(connCtx, conn, config)
		}()
	}
}

// serveConn completes the handshake and runs a console session on every
// shell channel the client opens, one after another.
func (l *SshListener) serveConn(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.ErrorContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	op := Operator{
		User:     sshConn.User(),
		Remote:   sshConn.RemoteAddr().String(),
		Protocol: "ssh",
	}
	slog.InfoContext(ctx, "ssh connection established", "operator", op.String())

	// Closing the connection ends the channel loop on shutdown.
	stop := context.AfterFunc(ctx, func() { _ = sshConn.Close() })
	defer stop()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			_ = newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}
		l.serveChannel(ctx, op, newChan)
	}
}

func (l *SshListener) serveChannel(ctx context.Context, op Operator, newChan ssh.NewChannel) {
	ch, requests, err := newChan.Accept()
	if err != nil {
		slog.ErrorContext(ctx, "accepting ssh channel", "operator", op.String(), "error", err)
		return
	}
	defer ch.Close()

	select {
	case <-awaitShell(requests):
		l.cm.AcceptConnection(ctx, op, ch)
	case <-ctx.Done():
	}
}

// awaitShell answers channel requests and closes the returned channel once
// the client asks for a shell. Clients hold back input until that reply.
// Pty requests are refused so the client keeps local echo and line editing.
func awaitShell(requests <-chan *ssh.Request) <-chan struct{} {
	ready := make(chan struct{})
	go func() {
		shell := false
		for req := range requests {
			ok := req.Type == "shell" && !shell
			_ = req.Reply(ok, nil)
			if ok {
				shell = true
				close(ready)
			}
		}
	}()
	return ready
}
