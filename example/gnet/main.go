package main

import (
	"github.com/panjf2000/gnet/v2"

	"github.com/bvarner/syslog"
	"github.com/bvarner/syslog/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
	logger *syslog.Logger
}

func (es *echoServer) OnBoot(eng gnet.Engine) gnet.Action {
	es.logger.Infof("echo server ready")
	return gnet.None
}

func (es *echoServer) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	es.logger.Debugf("connection from %s", c.RemoteAddr())
	return nil, gnet.None
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	_, _ = c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := syslog.NewBuilder().
		ConsoleLevelString("debug").
		FileLevelString("info").
		FileName("/var/log/gnet/echo-%f.log").
		MaxFileSizeMB(10).
		MaxFiles(5).
		Compression(true).
		IncludeSourceLocation(true).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	gnetAdapter := compat.NewGnetAdapter(logger)

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{logger: logger},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		logger.Criticalf("gnet stopped: %v", err)
	}
}
