package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func printJSON(data any) {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(data, "", "  ")
	if err != nil {
		logrus.WithError(err).Error("failed to marshal JSON for printing")
		fmt.Println("JSON error:", err)
		return
	}
	fmt.Println(string(b))
}
