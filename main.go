package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"msgsend/message"
	"msgsend/schema"
)

var (
	appName        = "msgsend"     // application name
	version        = "0.1.0"       // version
	build          = ""            // git build number
	configFileName = "config.yaml" // configuration file name
	detailedLog    = false         // debug output
	mode           = "auto"        // input form: auto, single, batch
	send           = false         // dispatch validated requests
)

func init() {
	flag.StringVar(&configFileName, "config", configFileName, "configuration `fileName`")
	flag.BoolVar(&detailedLog, "debug", detailedLog, "log debug output")
	flag.StringVar(&mode, "mode", mode, "input `form`: auto (message or list), single ({message}) or batch ({messages})")
	flag.BoolVar(&send, "send", send, "send validated requests to the API")
}

func main() {
	flag.Parse()
	config, err := LoadConfig(configFileName)
	if err != nil {
		logrus.WithError(err).Fatal("Error loading config")
	}
	logger := config.Logger(detailedLog)
	logger.WithFields(logrus.Fields{"version": version, "build": build}).Debug("Started")
	// a broken agent default must stop us before any request
	agent := message.DefaultAgent()
	logger.WithField("agent", agent.SDKVersion).Debug("Default agent")

	parser := message.NewParser(config.Validator())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	failed := false
	for _, name := range inputs {
		log := logger.WithField("input", name)
		req, err := process(parser, name)
		if err != nil {
			logError(log, err)
			failed = true
			continue
		}
		summarize(log, req)
		if err := json.NewEncoder(os.Stdout).Encode(req); err != nil {
			log.WithError(err).Error("Output error")
			failed = true
			continue
		}
		if !send {
			continue
		}
		client := config.Client(logger)
		if client == nil {
			log.Error("No API credentials configured")
			failed = true
			continue
		}
		resp, err := client.Dispatch(ctx, req)
		if err != nil {
			log.WithError(err).Error("Send error")
			failed = true
			continue
		}
		log.WithField("response", string(resp)).Info("Sent")
	}
	if failed {
		os.Exit(1)
	}
}

// process reads one input and validates it in the selected form.
func process(parser *message.Parser, name string) (message.SendRequest, error) {
	data, err := readInput(name)
	if err != nil {
		return nil, err
	}
	raw, err := message.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	switch mode {
	case "single":
		return parser.DecodeSingle(raw)
	case "batch":
		return parser.DecodeBatch(raw)
	case "auto":
		return parser.Resolve(raw)
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func logError(log *logrus.Entry, err error) {
	var verr *schema.Error
	if errors.As(err, &verr) {
		log.WithFields(logrus.Fields{
			"path": verr.Path,
			"kind": verr.Kind.String(),
		}).Warning(verr.Message)
		return
	}
	log.WithError(err).Error("Input error")
}

// summarize logs recipients and content size of every message.
func summarize(log *logrus.Entry, req message.SendRequest) {
	var msgs []message.Message
	switch req := req.(type) {
	case *message.SingleRequest:
		msgs = []message.Message{req.Message}
		log = log.WithField("form", "single")
	case *message.BatchRequest:
		msgs = req.Messages
		log = log.WithField("form", "batch")
	}
	for i, m := range msgs {
		log.WithFields(logrus.Fields{
			"index":      i,
			"recipients": m.To.Len(),
			"bytes":      message.EstimateBytes(m.Text),
			"suggested":  message.SuggestType(m),
			"fitsLMS":    message.FitsLMS(m.Text),
		}).Info("Validated")
	}
}
