// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log"

	controllerruntime "sigs.k8s.io/controller-runtime"

	"github.com/panoptes-k8s/panoptes/cmd/panoptes/app"
	"github.com/panoptes-k8s/panoptes/pkg/provider"
	"github.com/panoptes-k8s/panoptes/pkg/provider/builder"
)

func main() {
	cmd := app.NewPanoptesCommand(map[string]provider.ProviderOption{
		"k8s": {
			ProviderFromConfigFunc: builder.K8sProviderFromConfig,
			MetadataFunc:           builder.K8sProviderMetadata,
		},
	})

	if err := cmd.ExecuteContext(controllerruntime.SetupSignalHandler()); err != nil {
		log.Fatal(err)
	}
}
