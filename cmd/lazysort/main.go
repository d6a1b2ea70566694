// Copyright 2022 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

// Command lazysort is a small demo driver for the sorting cores.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pingcap/lazysort/config"
	"github.com/pingcap/lazysort/quicksort"
	"github.com/pingcap/lazysort/util/logutil"
	"github.com/pingcap/lazysort/util/memory"
	"github.com/pingcap/lazysort/util/ordering"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

var configPath = flag.String("config", "", "config file path")

func main() {
	flag.Parse()

	if *configPath != "" {
		if _, err := config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, "invalid config:", err)
			os.Exit(1)
		}
	}
	if err := logutil.InitLogger(config.GetGlobalConfig().LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}

	if total, err := memory.MemTotal(); err == nil {
		used, _ := memory.MemUsed()
		logutil.BgLogger().Info("system memory",
			zap.Uint64("total", total), zap.Uint64("used", used))
	} else {
		logutil.BgLogger().Warn("get system memory fail", zap.Error(err))
	}

	fmt.Println("Hello, world!")

	arr := []int{1, 3, 2, 4, 5}
	sorter := quicksort.NewLazyQuickSorter(arr, ordering.Ordered[int]())
	fmt.Println(sorter.At(1))
}
