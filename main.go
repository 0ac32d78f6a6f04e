// Copyright 2020 Qiniu Cloud (qiniu.com)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jasonlvhit/gocron"
	"github.com/qiniu/x/log"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/service/cloud"
	"github.com/solutions/seagulls/internal/service/dao"
	"github.com/solutions/seagulls/internal/service/db"
	"github.com/solutions/seagulls/internal/service/task"
	"github.com/solutions/seagulls/internal/service/web"
)

var (
	configFilePath = "seagulls.conf"
)

func main() {
	flag.StringVar(&configFilePath, "f", configFilePath, "configuration file to run seagulls server")
	flag.Parse()

	utils.InitConf(configFilePath)
	log.SetOutputLevel(utils.DefaultConf.DebugLevel)

	svc, err := newServices(&utils.DefaultConf)
	if err != nil {
		log.Fatalf("failed to create services, error %v", err)
	}

	// 启动定时任务
	go func() {
		reapTask := task.NewTempReapTask(utils.DefaultConf)
		otpTask := task.NewOTPSweepTask(svc.Accounts)
		_ = gocron.Every(10).Minutes().Do(reapTask.Start)
		_ = gocron.Every(1).Hours().Do(otpTask.Start)
		<-gocron.Start()
	}()

	// 启动 gin HTTP server。
	r := web.NewRouter(&utils.DefaultConf, svc)
	errch := make(chan error, 1)
	go func() {
		log.Infof("seagulls server listening on %s", utils.DefaultConf.ListenAddr)
		errch <- r.Run(utils.DefaultConf.ListenAddr)
	}()

	qC := make(chan os.Signal, 1)
	signal.Notify(qC, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-qC:
		log.Info(s.String())
	case err = <-errch:
		log.Error("http server stopped, error", err.Error())
	}
}

// newServices 连接 mongo，创建所有 DAO 与业务服务。
func newServices(conf *utils.Config) (web.Services, error) {
	var svc web.Services
	session, err := dao.Dial(nil, conf.Mongo)
	if err != nil {
		return svc, err
	}

	accounts, err := dao.NewAccountDaoService(nil, session, conf.Mongo)
	if err != nil {
		return svc, err
	}
	channels := dao.NewChannelDaoService(nil, session, conf.Mongo)
	competitions, err := dao.NewCompetitionDaoService(nil, session, conf.Mongo)
	if err != nil {
		return svc, err
	}
	infos, err := dao.NewStaticInfoDaoService(nil, session, conf.Mongo)
	if err != nil {
		return svc, err
	}
	tracks, err := dao.NewUploadTrackDaoService(nil, session, conf.Mongo)
	if err != nil {
		return svc, err
	}
	approved, err := dao.NewApprovedTrackDaoService(nil, session, conf.Mongo)
	if err != nil {
		return svc, err
	}
	daos := db.ContentDaos{
		Broadcasters:   dao.NewBroadcasterDaoService(nil, session, conf.Mongo),
		Programs:       dao.NewProgramDaoService(nil, session, conf.Mongo),
		Interviews:     dao.NewInterviewDaoService(nil, session, conf.Mongo),
		News:           dao.NewNewsDaoService(nil, session, conf.Mongo),
		Events:         dao.NewEventDaoService(nil, session, conf.Mongo),
		Advertisements: dao.NewAdvertisementDaoService(nil, session, conf.Mongo),
		Applicants:     dao.NewApplicantDaoService(nil, session, conf.Mongo),
		Competitions:   competitions,
	}
	referrers := daos.Referrers()
	referrers["static info"] = infos
	referrers["upload tracks"] = tracks
	referrers["approved tracks"] = approved

	media, err := cloud.NewKodoMediaStore(nil, conf)
	if err != nil {
		return svc, err
	}
	mailer, err := cloud.NewMailer(nil, &conf.Mail)
	if err != nil {
		return svc, err
	}

	svc.Channels = db.NewChannelService(nil, channels, referrers)
	svc.Accounts = db.NewAccountService(nil, conf, accounts, media, mailer)
	svc.Content = db.NewContentService(nil, daos, svc.Channels, accounts, media, conf.PhoneRegion)
	svc.StaticInfo = db.NewStaticInfoService(nil, infos, svc.Channels, media)
	svc.Tracks = db.NewTrackService(nil, channels, tracks, approved, accounts, media, mailer)
	return svc, nil
}
