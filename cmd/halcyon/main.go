// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/halcyonwm/halcyon/internal/config"
)

var (
	configPath = flag.String("config", config.DefaultPath(), "Path to the config file")
	toolMode   = flag.Bool("tool", false, "Start as a tool instead of a compositor")
	help       = flag.Bool("help", false, "Show this help message")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatalln("loading config")
	}

	if *toolMode {
		toolMain(cfg)
		return
	}
	compositorMain(cfg)
}
