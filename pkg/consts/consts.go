/*
Copyright 2022 Cortex Labs, Inc.

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

package consts

var (
	QrunVersion      = "master" // QRUN_VERSION
	QrunVersionMinor = "master" // QRUN_VERSION_MINOR

	UserAgent = "qrun/" + QrunVersion

	DefaultPortalURL = "https://arnica-stage.aqt.eu"
	APIPathPrefix    = "/api/v1"

	TokenEnvVar     = "AQT_TOKEN"
	PortalURLEnvVar = "AQT_PORTAL_URL"

	DefaultWorkspaceID = "default"
	DefaultResourceID  = "offline_simulator_no_noise"

	AuthHeader = "Authorization"
)
