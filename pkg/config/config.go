/*
Copyright 2024 The GeoSys Authors.

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

package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/geosysmlservis/optimizador-mapas/pkg/setting"
)

func init() {
	viper.AutomaticEnv()
}

func Mode() string {
	mode := viper.GetString(setting.ENVMode)
	if mode == "" {
		return setting.DebugMode
	}

	return mode
}

func Port() int {
	port := viper.GetInt(setting.ENVPort)
	if port == 0 {
		return 8080
	}

	return port
}

// WorkerURL is the endpoint the dispatcher delivers processing tasks to.
// It defaults to this instance's own worker endpoint.
func WorkerURL() string {
	url := viper.GetString(setting.ENVWorkerURL)
	if url == "" {
		return fmt.Sprintf("http://127.0.0.1:%d/process_single", Port())
	}

	return url
}

func S3Endpoint() string {
	return viper.GetString(setting.ENVS3Endpoint)
}

func S3AccessKey() string {
	return viper.GetString(setting.ENVS3AccessKey)
}

func S3SecretKey() string {
	return viper.GetString(setting.ENVS3SecretKey)
}

func S3Region() string {
	return viper.GetString(setting.ENVS3Region)
}

func S3Insecure() bool {
	return viper.GetBool(setting.ENVS3Insecure)
}

func RedisHost() string {
	host := viper.GetString(setting.ENVRedisHost)
	if host == "" {
		return "127.0.0.1"
	}

	return host
}

func RedisPort() int {
	port := viper.GetInt(setting.ENVRedisPort)
	if port == 0 {
		return 6379
	}

	return port
}

func RedisUserName() string {
	return viper.GetString(setting.ENVRedisUserName)
}

func RedisPassword() string {
	return viper.GetString(setting.ENVRedisPassword)
}

func RedisDB() int {
	return viper.GetInt(setting.ENVRedisDB)
}

func TaskQueueName() string {
	name := viper.GetString(setting.ENVTaskQueueName)
	if name == "" {
		return setting.DefaultTaskQueueName
	}

	return name
}

func DispatchWorkers() int {
	workers := viper.GetInt(setting.ENVDispatchWorkers)
	if workers <= 0 {
		return setting.DefaultDispatchWorkers
	}

	return workers
}

func TrackerBucket() string {
	bucket := viper.GetString(setting.ENVTrackerBucket)
	if bucket == "" {
		return setting.DefaultTrackerBucket
	}

	return bucket
}

func TrackerFile() string {
	file := viper.GetString(setting.ENVTrackerFile)
	if file == "" {
		return setting.DefaultTrackerFile
	}

	return file
}

func ScanIntervalMinutes() int {
	return viper.GetInt(setting.ENVScanIntervalMinutes)
}

func ScanInputBucket() string {
	return viper.GetString(setting.ENVScanInputBucket)
}

func ScanOutputBucket() string {
	return viper.GetString(setting.ENVScanOutputBucket)
}

func ScanMaxFiles() int {
	max := viper.GetInt(setting.ENVScanMaxFiles)
	if max <= 0 {
		return setting.DefaultMaxFiles
	}

	return max
}

func ScanParts() int {
	parts := viper.GetInt(setting.ENVScanParts)
	if parts <= 0 {
		return setting.DefaultEnqueueParts
	}

	return parts
}

func LogLevel() string {
	return "debug"
}

func SendLogToFile() bool {
	return viper.GetBool("LOG_TO_FILE")
}

func LogPath() string {
	return fmt.Sprintf("/var/log/%s/", setting.ProductName)
}

func LogName() string {
	return "product.log"
}

func RequestLogName() string {
	return "request.log"
}

func LogFile() string {
	return LogPath() + LogName()
}

func RequestLogFile() string {
	return LogPath() + RequestLogName()
}
