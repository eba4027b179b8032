// Package main 启动应用程序
package main

import "github.com/almostmoments/momentvault/pkg/cmd"

//	@title			MomentVault API
//	@version		1.0
//	@description	MomentVault 是一个活动照片收集服务，来宾扫码直传照片和视频，组织者管理相册并打包下载全部素材。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
