/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"k8s.io/klog/v2"

	"k8s.io/perf-tests/scalectl/pkg/config"
	"k8s.io/perf-tests/scalectl/pkg/flags"
	"k8s.io/perf-tests/scalectl/pkg/framework"
	"k8s.io/perf-tests/scalectl/pkg/framework/client"
	"k8s.io/perf-tests/scalectl/pkg/manifest"
	"k8s.io/perf-tests/scalectl/pkg/scaler"
)

var (
	kubeConfigPath string
	configPath     string
	namespace      string

	listAction         bool
	createManifestPath string
	deleteManifestPath string
	scaleAction        bool
	scaleGradualAction bool

	deploymentName string
	targetReplicas int
	scaleDuration  time.Duration
	cycleInterval  time.Duration
	pollInterval   time.Duration
	waitTimeout    time.Duration
	waitForReady   bool
)

func initFlags() {
	flags.StringEnvVar(&kubeConfigPath, "kubeconfig", "KUBECONFIG", "", "Path to the kubeconfig file")
	flags.StringVar(&configPath, "config", "", "Path to an optional scalectl config file with default settings")
	flags.StringVar(&namespace, "namespace", "default", "Namespace to operate in; empty means all namespaces for --list")

	flags.BoolVar(&listAction, "list", false, "List pods")
	flags.StringVar(&createManifestPath, "create", "", "Create the object described by the given manifest file")
	flags.StringVar(&deleteManifestPath, "delete", "", "Delete the object described by the given manifest file")
	flags.BoolVar(&scaleAction, "scale", false, "Scale a deployment to --replicas in one step")
	flags.BoolVar(&scaleGradualAction, "scale-gradual", false, "Scale a deployment to --replicas gradually over --duration")

	flags.StringVar(&deploymentName, "name", "", "Name of the deployment to scale")
	flags.IntVar(&targetReplicas, "replicas", -1, "Target replica count")
	flags.DurationVar(&scaleDuration, "duration", 0, "Total time budget for a gradual scale")
	flags.DurationVar(&cycleInterval, "cycle-interval", 0, "Time between gradual scale steps; config file or built-in default when unset")
	flags.DurationVar(&pollInterval, "poll-interval", 0, "Time between availability checks; config file or built-in default when unset")
	flags.DurationEnvVar(&waitTimeout, "wait-timeout", "SCALECTL_WAIT_TIMEOUT", 0, "Bound on each availability wait; 0 waits forever")
	flags.BoolEnvVar(&waitForReady, "wait", "SCALECTL_WAIT", false, "After each scale step, wait until the requested count is available")
}

func usage(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n\n", args...)
	fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
	flags.PrintDefaults()
	os.Exit(1)
}

func validateFlags() []error {
	errList := make([]error, 0)
	if kubeConfigPath == "" {
		errList = append(errList, fmt.Errorf("no kubeconfig path specified"))
	}
	actions := 0
	for _, selected := range []bool{listAction, createManifestPath != "", deleteManifestPath != "", scaleAction, scaleGradualAction} {
		if selected {
			actions++
		}
	}
	if actions != 1 {
		errList = append(errList, fmt.Errorf("exactly one of --list, --create, --delete, --scale, --scale-gradual must be given"))
	}
	if scaleAction || scaleGradualAction {
		if deploymentName == "" {
			errList = append(errList, fmt.Errorf("--name is required for scale actions"))
		}
		if targetReplicas < 0 {
			errList = append(errList, fmt.Errorf("--replicas must be a non-negative integer"))
		}
	}
	if scaleGradualAction && scaleDuration <= 0 {
		errList = append(errList, fmt.Errorf("--duration must be positive for --scale-gradual"))
	}
	return errList
}

func listPods(f *framework.Framework) error {
	pods, err := client.ListPods(f.GetClientSet(), namespace)
	if err != nil {
		return fmt.Errorf("listing pods: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAMESPACE\tNAME\tPHASE\tNODE")
	for i := range pods {
		pod := &pods[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", pod.Namespace, pod.Name, pod.Status.Phase, pod.Spec.NodeName)
	}
	return w.Flush()
}

func createFromManifest(f *framework.Framework, path string) error {
	obj, err := manifest.LoadObject(path)
	if err != nil {
		return err
	}
	objNamespace := obj.GetNamespace()
	if objNamespace == "" {
		objNamespace = namespace
	}
	if err := f.CreateObject(objNamespace, obj.GetName(), obj); err != nil {
		return fmt.Errorf("creating %s %s/%s: %w", obj.GetKind(), objNamespace, obj.GetName(), err)
	}
	klog.V(1).Infof("created %s %s/%s", obj.GetKind(), objNamespace, obj.GetName())
	return nil
}

func deleteFromManifest(f *framework.Framework, path string) error {
	obj, err := manifest.LoadObject(path)
	if err != nil {
		return err
	}
	objNamespace := obj.GetNamespace()
	if objNamespace == "" {
		objNamespace = namespace
	}
	if err := f.DeleteObject(obj.GroupVersionKind(), objNamespace, obj.GetName()); err != nil {
		return fmt.Errorf("deleting %s %s/%s: %w", obj.GetKind(), objNamespace, obj.GetName(), err)
	}
	klog.V(1).Infof("deleted %s %s/%s", obj.GetKind(), objNamespace, obj.GetName())
	return nil
}

func runScale(ctx context.Context, f *framework.Framework, gradual bool) error {
	observation, err := scaler.Observe(ctx, f.GetClientSet(), namespace, deploymentName)
	if err != nil {
		return fmt.Errorf("reading %s/%s: %w", namespace, deploymentName, err)
	}
	klog.V(1).Infof("%s/%s: %d desired, %d available before scaling", namespace, deploymentName, observation.Desired, observation.Available)

	job := &scaler.Job{
		Name:             deploymentName,
		Namespace:        namespace,
		TargetReplicas:   int32(targetReplicas),
		Duration:         scaleDuration,
		CycleInterval:    cycleInterval,
		WaitForAvailable: waitForReady,
	}
	executor := scaler.NewExecutor(scaler.NewDeploymentScaler(f.GetClientSet()), pollInterval, waitTimeout)
	if gradual {
		return executor.Run(ctx, job)
	}
	return executor.ScaleNow(ctx, job)
}

func main() {
	initFlags()
	if err := flags.Parse(); err != nil {
		usage("Flag parsing error: %v", err)
	}
	if errList := validateFlags(); len(errList) > 0 {
		for _, err := range errList {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		usage("Invalid arguments")
	}

	defaults, err := config.ReadDefaults(configPath)
	if err != nil {
		klog.Exitf("Config reading error: %v", err)
	}
	if cycleInterval <= 0 {
		cycleInterval = defaults.CycleInterval
	}
	if pollInterval <= 0 {
		pollInterval = defaults.PollInterval
	}
	if waitTimeout <= 0 {
		waitTimeout = defaults.WaitTimeout
	}

	f, err := framework.NewFramework(kubeConfigPath, defaults.ClientQPS, defaults.ClientBurst)
	if err != nil {
		klog.Exitf("Framework creation error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case listAction:
		err = listPods(f)
	case createManifestPath != "":
		err = createFromManifest(f, createManifestPath)
	case deleteManifestPath != "":
		err = deleteFromManifest(f, deleteManifestPath)
	case scaleAction:
		err = runScale(ctx, f, false)
	case scaleGradualAction:
		err = runScale(ctx, f, true)
	}
	if err != nil {
		klog.Exitf("Operation failed: %v", err)
	}
}
