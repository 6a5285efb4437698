package main

import (
	"fmt"

	"github.com/samber/do"
	tele "gopkg.in/telebot.v3"
)

const contextContainer = "context-container"

func getContextService[T any](context tele.Context) (T, error) {
	var zero T

	contextValue := context.Get(contextContainer)
	if contextValue == nil {
		return zero, fmt.Errorf("container not found")
	}

	injector, ok := contextValue.(*do.Injector)
	if !ok {
		return zero, fmt.Errorf("container not valid")
	}

	return do.Invoke[T](injector)
}
