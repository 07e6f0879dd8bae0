// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

// Package streamd runs a stream ledger node behind its REST API.
package streamd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/algorand/go-deadlock"
	"golang.org/x/sync/errgroup"

	"github.com/algorand/go-streampay/config"
	apiServer "github.com/algorand/go-streampay/daemon/streamd/api/server"
	"github.com/algorand/go-streampay/data/bookkeeping"
	"github.com/algorand/go-streampay/logging"
	"github.com/algorand/go-streampay/node"
	"github.com/algorand/go-streampay/util/metrics"
	"github.com/algorand/go-streampay/util/tokens"
)

// maxHeaderBytes must have enough room to hold an api token
const maxHeaderBytes = 4096

const (
	// PidFilename holds the process id of a running streamd.
	PidFilename = "streamd.pid"
	// NetFilename holds the address the REST API listens on.
	NetFilename = "streamd.net"
	// LockFilename is held by the streamd running against a data directory.
	LockFilename = "streamd.lock"

	liveLogFilename = "node.log"
	shutdownTimeout = 5 * time.Second
)

// Server represents an instance of the REST API HTTP server
type Server struct {
	RootPath string
	Genesis  bookkeeping.Genesis

	pidFile   string
	netFile   string
	log       logging.Logger
	logWriter io.WriteCloser
	cfg       config.Local
	node      *node.StreamNode
	registry  *metrics.Registry
	server    http.Server

	stopping     chan struct{}
	stoppingOnce sync.Once
	stopOnce     sync.Once
}

// Initialize creates a Node instance over the data directory
func (s *Server) Initialize(cfg config.Local, logToStdout bool) error {
	s.log = logging.Base()
	s.cfg = cfg

	if cfg.LogSizeLimit > 0 && !logToStdout {
		liveLog := filepath.Join(s.RootPath, liveLogFilename)
		archive := filepath.Join(s.RootPath, cfg.LogArchiveName)
		fmt.Println("Logging to: ", liveLog)
		writer, err := logging.MakeCyclicFileWriter(liveLog, archive, cfg.LogSizeLimit)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		s.logWriter = writer
		s.log.SetOutput(writer)
	} else {
		fmt.Println("Logging to: stdout")
		s.log.SetOutput(os.Stdout)
	}
	s.log.SetJSONFormatter()
	s.log.SetLevel(logging.Level(cfg.BaseLoggerDebugLevel))
	setupDeadlockLogger(s.log)

	// configure the deadlock detector library
	switch {
	case cfg.DeadlockDetection > 0:
		deadlock.Opts.Disable = false
	case cfg.DeadlockDetection < 0:
		deadlock.Opts.Disable = true
	}
	if !deadlock.Opts.Disable {
		deadlock.Opts.DeadlockTimeout = time.Second * time.Duration(cfg.DeadlockDetectionThreshold)
	}

	s.log.Infoln("++++++++++++++++++++++++++++++++++++++++")
	s.log.Infof("Logging Starting: %s", config.GetCurrentVersion())
	s.log.Infoln("++++++++++++++++++++++++++++++++++++++++")

	s.registry = metrics.MakeRegistry()
	streamNode, err := node.MakeStreamNode(s.log, s.RootPath, cfg, s.Genesis, s.registry)
	if err != nil {
		s.closeLog()
		return fmt.Errorf("couldn't initialize the node: %w", err)
	}
	s.node = streamNode
	s.stopping = make(chan struct{})

	// When a caller to logging uses Fatal, we want to stop the node before os.Exit is called.
	logging.RegisterExitHandler(s.Stop)
	return nil
}

// helper handles startup of tcp listener
func makeListener(addr string) (net.Listener, error) {
	if (addr == "127.0.0.1:0") || (addr == ":0") {
		// if port 0 is provided, prefer port 8080 first, then fall back to port 0
		preferredAddr := strings.Replace(addr, ":0", ":8080", -1)
		listener, err := net.Listen("tcp", preferredAddr)
		if err == nil {
			return listener, err
		}
	}
	// err was not nil or :0 was not provided, fall back to originally passed addr
	return net.Listen("tcp", addr)
}

// Start serves the REST API and runs the node until ctx is done, SIGINT or
// SIGTERM is received, or either of them fails. The node is stopped before
// Start returns.
func (s *Server) Start(ctx context.Context) error {
	defer s.Stop()

	var apiToken string
	if !s.cfg.DisableAPIAuth {
		var err error
		apiToken, err = tokens.GetAndValidateAPIToken(s.RootPath, tokens.StreamdTokenFilename)
		if err != nil {
			return fmt.Errorf("APIToken error: %w", err)
		}
	}

	addr := s.cfg.EndpointAddress
	if addr == "" {
		addr = ":http"
	}
	listener, err := makeListener(addr)
	if err != nil {
		return fmt.Errorf("could not start node: %w", err)
	}
	addr = listener.Addr().String()

	var reg *metrics.Registry
	if s.cfg.EnableMetrics {
		reg = s.registry
	}
	s.server = http.Server{
		Addr:           addr,
		Handler:        apiServer.NewRouter(s.log, s.node, s.stopping, apiToken, reg),
		ReadTimeout:    time.Duration(s.cfg.RestReadTimeoutSeconds) * time.Second,
		WriteTimeout:   time.Duration(s.cfg.RestWriteTimeoutSeconds) * time.Second,
		MaxHeaderBytes: maxHeaderBytes,
	}

	// Written before serving so that anything waiting on them finds the
	// server ready.
	s.pidFile = filepath.Join(s.RootPath, PidFilename)
	s.netFile = filepath.Join(s.RootPath, NetFilename)
	err = os.WriteFile(s.pidFile, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
	if err != nil {
		listener.Close()
		return fmt.Errorf("pidfile error: %w", err)
	}
	err = os.WriteFile(s.netFile, []byte(fmt.Sprintf("%s\n", addr)), 0644)
	if err != nil {
		listener.Close()
		return fmt.Errorf("netfile error: %w", err)
	}

	// Handle signals cleanly
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	signal.Ignore(syscall.SIGHUP)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.node.Run(gctx)
	})
	g.Go(func() error {
		err := s.server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		// abort pending submissions before draining connections
		s.signalStopping()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})

	s.log.Infof("Node running and accepting RPC requests over HTTP on %v", addr)
	fmt.Printf("Node running and accepting RPC requests over HTTP on %v. Press Ctrl-C to exit\n", addr)
	err = g.Wait()
	if err != nil {
		s.log.Warn(err)
	} else {
		s.log.Info("Node exited successfully")
	}
	return err
}

func (s *Server) signalStopping() {
	s.stoppingOnce.Do(func() { close(s.stopping) })
}

// Stop closes the node and removes the pid and net files. It is called by
// Start on return and may be called again.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.signalStopping()
		s.node.Stop()
		if s.pidFile != "" {
			os.Remove(s.pidFile)
		}
		if s.netFile != "" {
			os.Remove(s.netFile)
		}
		s.closeLog()
	})
}

func (s *Server) closeLog() {
	if s.logWriter == nil {
		return
	}
	s.log.SetOutput(os.Stderr)
	s.logWriter.Close()
	s.logWriter = nil
}
