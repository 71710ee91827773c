// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"os"
	"path/filepath"

	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// GetPods returns all pods for a given namespace, or all namespaces if it's set to empty string "".
// It retrieves pods by portions set by limit.
func GetPods(ctx context.Context, c client.Client, namespace string, selector labels.Selector, limit int64) ([]corev1.Pod, error) {
	podList := &corev1.PodList{}
	var pods []corev1.Pod

	for {
		if err := c.List(ctx, podList, client.InNamespace(namespace), client.Limit(limit), client.MatchingLabelsSelector{Selector: selector}, client.Continue(podList.Continue)); err != nil {
			return nil, err
		}

		pods = append(pods, podList.Items...)

		if len(podList.Continue) == 0 {
			return pods, nil
		}
	}
}

// GetRoleBindings returns all roleBindings for a given namespace, or all namespaces if it's set to empty string "".
// It retrieves roleBindings by portions set by limit.
func GetRoleBindings(ctx context.Context, c client.Client, namespace string, selector labels.Selector, limit int64) ([]rbacv1.RoleBinding, error) {
	roleBindingList := &rbacv1.RoleBindingList{}
	var roleBindings []rbacv1.RoleBinding

	for {
		if err := c.List(ctx, roleBindingList, client.InNamespace(namespace), client.Limit(limit), client.MatchingLabelsSelector{Selector: selector}, client.Continue(roleBindingList.Continue)); err != nil {
			return nil, err
		}

		roleBindings = append(roleBindings, roleBindingList.Items...)

		if len(roleBindingList.Continue) == 0 {
			return roleBindings, nil
		}
	}
}

// GetNetworkPolicies returns all networkPolicies for a given namespace, or all namespaces if it's set to empty string "".
// It retrieves networkPolicies by portions set by limit.
func GetNetworkPolicies(ctx context.Context, c client.Client, namespace string, selector labels.Selector, limit int64) ([]networkingv1.NetworkPolicy, error) {
	networkPolicyList := &networkingv1.NetworkPolicyList{}
	var networkPolicies []networkingv1.NetworkPolicy

	for {
		if err := c.List(ctx, networkPolicyList, client.InNamespace(namespace), client.Limit(limit), client.MatchingLabelsSelector{Selector: selector}, client.Continue(networkPolicyList.Continue)); err != nil {
			return nil, err
		}

		networkPolicies = append(networkPolicies, networkPolicyList.Items...)

		if len(networkPolicyList.Continue) == 0 {
			return networkPolicies, nil
		}
	}
}

// RESTConfigFromFile builds a [*rest.Config] from a file.
func RESTConfigFromFile(filePath string) (*rest.Config, error) {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, err
	}
	config, err := clientcmd.RESTConfigFromKubeConfig(data)
	if err != nil {
		return nil, err
	}

	return config, nil
}
