package controller

// Статические тексты бота. Сохранены как в исходной рассылке.

const welcomeText = `👋 Привет!
Я бот Александра - преподавателя игры на гитаре

Я помогу вам узнать всё о занятиях и записаться на пробный урок!

Выберите интересующий вас раздел:

Возникли проблемы с ботом? Напишите нам на аккаунт: @ryder_music_academy`

const trialLessonText = `🎯 *ПРОБНОЕ ЗАНЯТИЕ*

*Время:* 45-50 минут
*Формат:* онлайн по Zoom

*На пробном для новичков:*
• устройство инструмента
• постановка правой и левой рук
• первый перебор (закрепляем постановку правой)
• изучим обозначения нот и аккордов
• зажмём первые аккорды (закрепляем постановку левой)
• научимся играть перебором/боем
• всё это на примере песни, которую слушает ученик!

*На пробном для продвинутых:*
• определяем ваш текущий уровень - знакомство и постановка цели
• разберём один из вопросов/треков, который вызывает трудности
• составим индивидуальный план обучения

Полноценное обучение после пробного идёт по абонементам (актуальная цена в личных сообщениях)

*Готовы выбрать время для пробного занятия?*`

const aboutText = `*Об обучении и преподавателе*

*Александр - исполнитель, продюсер и гитарист*

Играет на гитаре > 12 лет
Опыт преподавания > 5 лет

Переучил огромное кол-во людей от 9 до 63 лет по всему миру.

Всё обучение, как и пробное занятие, построено на том, что мы будем изучать технические приёмы и теоретические темы на гитаре через те песни, которые вы любите.

Как показывает мой опыт, такой подход учащимся гораздо интереснее, а результативность его выше.

*Записывайся, чтобы уже на пробном сыграть 1-ю песню*`

const preparationText = `📋 *Как подготовиться к уроку?*

1️⃣ Зарегистрироваться и скачать Zoom
   👉 https://zoom.us/download

2️⃣ Скинуть 5-10 треков, которые хочется научиться играть (ссылками)

3️⃣ Внести предоплату и скинуть скриншот в чат @ryder_music_academy

После оплаты я свяжусь с вами, чтобы утвердить время проведения пробного занятия!`

const customTimezonePrompt = `🕐 *Укажите ваш часовой пояс*

Напишите в формате:
` + "`+3`" + ` (плюс 3 часа от Москвы)
` + "`-2`" + ` (минус 2 часа от Москвы)
` + "`0`" + ` (по Москве)`

const badTimezoneText = `❌ Неверный формат!

Напишите число от -12 до +12
Например: ` + "`+3`" + ` или ` + "`-5`"

const messageRelayedText = `Спасибо за сообщение! ✅

Александр получил ваше сообщение и ответит в ближайшее время.

А пока можете посмотреть информацию в меню:`
