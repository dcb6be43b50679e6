package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// APIFetcher lists resources directly through the Kubernetes API. Used when
// the report runs inside the cluster and no oc binary is available.
type APIFetcher struct {
	clientset kubernetes.Interface
}

// NewAPIFetcher builds a fetcher from the in-cluster config, falling back to
// KUBECONFIG or ~/.kube/config when running outside the cluster.
func NewAPIFetcher() (*APIFetcher, error) {
	config, err := getKubeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}

	return &APIFetcher{clientset: clientset}, nil
}

func getKubeConfig() (*rest.Config, error) {
	config, err := rest.InClusterConfig()
	if err == nil {
		log.Println("Using in-cluster kubernetes config")
		return config, nil
	}

	log.Println("Not running in cluster, trying local kubeconfig...")

	kubeconfigPath := os.Getenv("KUBECONFIG")
	if kubeconfigPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		kubeconfigPath = filepath.Join(homeDir, ".kube", "config")
	}

	config, err = clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build config from kubeconfig: %w", err)
	}

	log.Printf("Using kubeconfig from: %s", kubeconfigPath)
	return config, nil
}

func (a *APIFetcher) Namespaces(ctx context.Context) ([]corev1.Namespace, error) {
	list, err := a.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Op: "list namespaces", Cause: err}
	}
	return list.Items, nil
}

func (a *APIFetcher) ResourceQuotas(ctx context.Context) ([]corev1.ResourceQuota, error) {
	list, err := a.clientset.CoreV1().ResourceQuotas("").List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Op: "list resource quotas", Cause: err}
	}
	return list.Items, nil
}

func (a *APIFetcher) Pods(ctx context.Context) ([]corev1.Pod, error) {
	list, err := a.clientset.CoreV1().Pods("").List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Op: "list pods", Cause: err}
	}
	return list.Items, nil
}
