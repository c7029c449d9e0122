// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command vergeinfo prints the Vulkan physical devices visible to the
// engine as JSON, without opening a window.
package main

import (
	"encoding/json"
	"flag"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/verge/core"
)

var debug = flag.Bool("vkdbg", false, "Load the Vulkan validation layer")

func main() {
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg := core.InstanceConfiguration{
		DebugMode:  *debug,
		Extensions: []string{},
		Layers:     []string{},
	}

	instance, err := core.NewVulkanInstance(core.DefaultVulkanApplicationInfo, nil, cfg)
	if err != nil {
		log.Fatal(err)
	}

	if bytes, err := json.MarshalIndent(instance.PhysicalDevicesInfo(), "", "  "); err == nil {
		fmt.Printf("%s\n", bytes)
	} else {
		log.Fatal(err)
	}

	instance.Destroy()
}
